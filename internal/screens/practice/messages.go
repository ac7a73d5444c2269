package practice

// fetchDoneMsg signals that a fetch round-trip finished. The outcome is
// read from the session store, not carried in the message.
type fetchDoneMsg struct{}

// answerRecordedMsg signals that a submit round-trip finished.
type answerRecordedMsg struct{}
