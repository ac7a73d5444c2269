package practice

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/inferahq/infera/internal/question"
)

func event(ts int64, correct bool, streak int, subject string) PerformanceEvent {
	acc := 0.0
	if correct {
		acc = 100
	}
	return PerformanceEvent{
		Timestamp: ts,
		Correct:   correct,
		Accuracy:  acc,
		Streak:    streak,
		SubjectID: subject,
		ChapterID: "ch",
		TopicID:   "tp",
	}
}

func checkInvariants(t *testing.T, s State) {
	t.Helper()
	if s.TotalCorrect > s.TotalAttempted {
		t.Fatalf("TotalCorrect %d > TotalAttempted %d", s.TotalCorrect, s.TotalAttempted)
	}
	if s.OverallAccuracy < 0 || s.OverallAccuracy > 100 {
		t.Fatalf("OverallAccuracy %v outside [0,100]", s.OverallAccuracy)
	}
	if s.TotalAttempted != len(s.Log) {
		t.Fatalf("TotalAttempted %d != len(Log) %d", s.TotalAttempted, len(s.Log))
	}
	want := 0.0
	if len(s.Log) > 0 {
		want = 100 * float64(s.TotalCorrect) / float64(s.TotalAttempted)
	}
	if s.OverallAccuracy != want {
		t.Fatalf("OverallAccuracy = %v, want %v", s.OverallAccuracy, want)
	}
}

func TestReduce_AddPerformanceEvent(t *testing.T) {
	s := Initial()

	s = Reduce(s, AddPerformanceEvent{event(1000, true, 1, "math")})
	checkInvariants(t, s)
	if s.CurrentStreak != 1 || s.TotalCorrect != 1 || s.OverallAccuracy != 100 {
		t.Errorf("after 1 correct: streak=%d correct=%d accuracy=%v", s.CurrentStreak, s.TotalCorrect, s.OverallAccuracy)
	}

	s = Reduce(s, AddPerformanceEvent{event(2000, true, 2, "math")})
	checkInvariants(t, s)

	s = Reduce(s, AddPerformanceEvent{event(3000, false, 0, "physics")})
	checkInvariants(t, s)
	if s.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 after incorrect", s.CurrentStreak)
	}
	if s.TotalAttempted != 3 || s.TotalCorrect != 2 {
		t.Errorf("totals = %d/%d, want 2/3", s.TotalCorrect, s.TotalAttempted)
	}
	// 2/3 correct.
	if s.OverallAccuracy < 66.6 || s.OverallAccuracy > 66.7 {
		t.Errorf("OverallAccuracy = %v, want ~66.7", s.OverallAccuracy)
	}
}

// The invariants must hold after every single transition, not just at the
// end, for arbitrary action sequences.
func TestReduce_InvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 20; run++ {
		s := Initial()
		streak := 0
		for i := 0; i < 200; i++ {
			switch rng.Intn(5) {
			case 0:
				s = Reduce(s, SetLoading{rng.Intn(2) == 0})
			case 1:
				s = Reduce(s, SetCurrentQuestion{nil})
			case 2:
				correct := rng.Intn(2) == 0
				if correct {
					streak++
				} else {
					streak = 0
				}
				s = Reduce(s, AddPerformanceEvent{event(int64(i)*1000, correct, streak, "s")})
			case 3:
				s = Reduce(s, UpdateFilters{Subjects: []string{"math"}})
			case 4:
				s = Reduce(s, Reset{})
				streak = 0
			}
			checkInvariants(t, s)
		}
	}
}

func TestReduce_Deterministic(t *testing.T) {
	actions := []Action{
		SetLoading{true},
		AddPerformanceEvent{event(1000, true, 1, "math")},
		SetLoading{false},
		AddPerformanceEvent{event(2000, false, 0, "math")},
		UpdateFilters{Topics: []string{"forces"}},
		AddPerformanceEvent{event(3000, true, 1, "physics")},
	}

	a, b := Initial(), Initial()
	for _, act := range actions {
		a = Reduce(a, act)
		b = Reduce(b, act)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical action sequences produced different states:\n%+v\n%+v", a, b)
	}
}

func TestReduce_AppendDoesNotMutatePriorState(t *testing.T) {
	s1 := Reduce(Initial(), AddPerformanceEvent{event(1000, true, 1, "math")})
	s2 := Reduce(s1, AddPerformanceEvent{event(2000, true, 2, "math")})
	_ = Reduce(s1, AddPerformanceEvent{event(3000, false, 0, "math")})

	if len(s1.Log) != 1 {
		t.Errorf("len(s1.Log) = %d, want 1", len(s1.Log))
	}
	if s2.Log[1].Timestamp != 2000 {
		t.Errorf("s2.Log[1].Timestamp = %d, want 2000 (log shared with later append)", s2.Log[1].Timestamp)
	}
}

func TestReduce_SetCurrentQuestionLeavesLogAlone(t *testing.T) {
	s := Reduce(Initial(), AddPerformanceEvent{event(1000, true, 1, "math")})
	s = Reduce(s, SetCurrentQuestion{&question.Question{ID: "q-1"}})

	if s.CurrentQuestion == nil || s.CurrentQuestion.ID != "q-1" {
		t.Fatal("current question not set")
	}
	if len(s.Log) != 1 || s.TotalAttempted != 1 {
		t.Error("SetCurrentQuestion touched the log")
	}

	s = Reduce(s, SetCurrentQuestion{nil})
	if s.CurrentQuestion != nil {
		t.Error("SetCurrentQuestion(nil) did not clear the question")
	}
}

func TestReduce_Reset(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetCurrentQuestion{&question.Question{ID: "q-1"}})
	s = Reduce(s, AddPerformanceEvent{event(1000, true, 1, "math")})
	s = Reduce(s, SetLoading{true})

	s = Reduce(s, Reset{})
	if !reflect.DeepEqual(s, Initial()) {
		t.Errorf("Reset produced %+v, want initial state", s)
	}
}

func TestReduce_UpdateFiltersPartial(t *testing.T) {
	s := Reduce(Initial(), UpdateFilters{Subjects: []string{"math"}, Chapters: []string{"algebra"}})
	s = Reduce(s, UpdateFilters{Topics: []string{"quadratic"}})

	if len(s.Filters.Subjects) != 1 || s.Filters.Subjects[0] != "math" {
		t.Errorf("Subjects = %v, want [math]", s.Filters.Subjects)
	}
	if len(s.Filters.Topics) != 1 {
		t.Errorf("Topics = %v, want [quadratic]", s.Filters.Topics)
	}
}

func TestStore_Dispatch(t *testing.T) {
	st := NewStore()
	got := st.Dispatch(AddPerformanceEvent{event(1000, true, 1, "math")})
	if got.TotalAttempted != 1 {
		t.Errorf("TotalAttempted = %d, want 1", got.TotalAttempted)
	}
	if st.State().TotalAttempted != 1 {
		t.Error("State() does not reflect dispatch")
	}
}
