package quiz

type QuizKind string

const (
	QuizKindFinal    QuizKind = "final"
	QuizKindPeriodic QuizKind = "periodic"
)

var AllKinds = []QuizKind{QuizKindFinal, QuizKindPeriodic}

func (k QuizKind) IsValid() bool {
	for _, v := range AllKinds {
		if k == v {
			return true
		}
	}
	return false
}

type RunStatus string

const (
	RunStatusOpen    RunStatus = "open"
	RunStatusDone    RunStatus = "done"
	RunStatusExpired RunStatus = "expired"
)

// IsTerminal indica estados que nunca voltam a "open".
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusDone || s == RunStatusExpired
}

type AttemptStatus string

const (
	AttemptStatusApto    AttemptStatus = "Apto"
	AttemptStatusNaoApto AttemptStatus = "Não apto"
)
