package processor

import (
	"encoding/json"
	"io"
)

// Simulate runs m to completion and writes a JSON array of States to
// output: the initial state followed by one state per cycle. A run that
// stops on an error still writes the log up to and including the failing
// cycle, then returns the run error.
func Simulate(m Machine, output io.Writer) error {
	log := []State{m.DumpState()}

	var runErr error
	for !m.Done() {
		runErr = m.Step()
		log = append(log, m.DumpState())
		if runErr != nil {
			break
		}
	}

	if err := json.NewEncoder(output).Encode(log); err != nil {
		return err
	}
	return runErr
}
