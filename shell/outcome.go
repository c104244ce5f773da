package shell

import "fmt"

type Kind int

const (
	Success Kind = iota
	NonZeroExit
	SpawnError
)

func (it Kind) String() string {
	switch it {
	case Success:
		return "success"
	case NonZeroExit:
		return "non-zero exit"
	case SpawnError:
		return "spawn error"
	}
	return fmt.Sprintf("kind(%d)", int(it))
}

// Outcome is the tagged result of one blocking process run.
type Outcome struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func succeeded() Outcome {
	return Outcome{Kind: Success}
}

func exited(code int, err error) Outcome {
	return Outcome{
		Kind:    NonZeroExit,
		Code:    code,
		Message: fmt.Sprintf("process exited with code %d", code),
		Err:     err,
	}
}

func spawnFailed(err error) Outcome {
	return Outcome{
		Kind:    SpawnError,
		Code:    -1,
		Message: err.Error(),
		Err:     err,
	}
}

func (it Outcome) Ok() bool {
	return it.Kind == Success
}

// AsError keeps the historical (code, error) shape used by callers.
func (it Outcome) AsError() (int, error) {
	switch it.Kind {
	case Success:
		return 0, nil
	case NonZeroExit:
		return it.Code, fmt.Errorf("%s", it.Message)
	}
	return it.Code, it.Err
}
