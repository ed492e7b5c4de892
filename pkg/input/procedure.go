package input

import (
	"strconv"
	"strings"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// procedureFields is the number of integers on every procedure line.
const procedureFields = 3

// ParseProcedures converts a procedure block into procedures in file order.
// Each line reads "move N from S to D"; only the integer positions are
// interpreted. Blank lines are skipped.
func ParseProcedures(block string) ([]stack.Procedure, error) {
	var procs []stack.Procedure
	for i, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parseProcedure(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "procedure line %d", i+1)
		}
		procs = append(procs, p)
	}
	return procs, nil
}

func parseProcedure(line string) (stack.Procedure, error) {
	fields := strings.Fields(line)

	var nums []int
	for i := 1; i < len(fields); i += 2 {
		n, err := strconv.ParseUint(fields[i], 10, strconv.IntSize-1)
		if err != nil {
			return stack.Procedure{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "%q is not a whole number", fields[i])
		}
		nums = append(nums, int(n))
	}
	if len(nums) != procedureFields {
		return stack.Procedure{}, errors.New(errors.ErrCodeMalformedInput,
			"expected %d integers, found %d in %q", procedureFields, len(nums), line)
	}
	return stack.Procedure{Count: nums[0], Source: nums[1], Destination: nums[2]}, nil
}
