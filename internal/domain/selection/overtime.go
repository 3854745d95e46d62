package selection

import (
	"strconv"
	"strings"
)

// Overtime is a count of overtime games in a round. Counts above three are
// collapsed into OvertimeMoreThanThree.
type Overtime int

const OvertimeMoreThanThree Overtime = 4

// ParseOvertime reads "0".."3" and the "More than 3" style answers. Only the
// leading digit counts otherwise, so "3+" is 3 and "4+" is more than 3.
func ParseOvertime(raw string) (Overtime, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, false
	}
	if strings.HasPrefix(value, "more") || strings.HasPrefix(value, ">") {
		return OvertimeMoreThanThree, true
	}
	n, err := strconv.Atoi(value[:1])
	if err != nil || n < 0 {
		return 0, false
	}
	if n > 3 {
		return OvertimeMoreThanThree, true
	}
	return Overtime(n), true
}

// Steps is the number of answer steps between o and other. "More than 3" is
// one step from 3.
func (o Overtime) Steps(other Overtime) int {
	d := int(o) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

func (o Overtime) String() string {
	if o >= OvertimeMoreThanThree {
		return "More than 3"
	}
	return strconv.Itoa(int(o))
}
