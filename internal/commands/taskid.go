package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskIDRequired is returned when no task id is given.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single positional task id argument.
// A leading '#' is accepted ("#12").
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args, " "))
	}

	s := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}
