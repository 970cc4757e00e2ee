package main

import (
	"github.com/docketlabs/docket/internal/types"
	"github.com/docketlabs/docket/internal/utils"
)

// taskID normalizes CLI task id input: "42" and "task-042" both resolve to
// "TASK-042".
func taskID(input string) string {
	return utils.NormalizeID(input, types.TaskIDPrefix)
}
