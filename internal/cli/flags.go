package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/counsel/internal/planner"
)

// durationFlag is a meeting length restricted to planner.DurationOptions.
type durationFlag int

var _ pflag.Value = (*durationFlag)(nil)

func newDurationFlag(v int) *durationFlag {
	d := durationFlag(v)
	return &d
}

func (d *durationFlag) String() string {
	return strconv.Itoa(int(*d))
}

func (d *durationFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is not a number of minutes", s)
	}
	if !planner.ValidDuration(v) {
		return fmt.Errorf("%d is not one of %v", v, planner.DurationOptions)
	}
	*d = durationFlag(v)
	return nil
}

func (d *durationFlag) Type() string {
	return "minutes"
}

func (d *durationFlag) Int() int {
	return int(*d)
}
