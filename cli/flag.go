package cli

import (
	"strings"

	"github.com/ka2n/yure/display"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

type styleFlag struct {
	IsSet bool
	Value display.Style
}

// String implements pflag.Value.
func (s *styleFlag) String() string {
	return string(s.Value)
}

func (s *styleFlag) Set(value string) error {
	st, err := display.ParseStyle(value)
	if err != nil {
		return err
	}
	s.Value = st
	s.IsSet = true
	return nil
}

func (s *styleFlag) Type() string {
	return "style"
}

var _ pflag.Value = &styleFlag{}

// styleNames is the usage list of accepted styles
func styleNames() string {
	return strings.Join(lo.Map(display.Styles(), func(s display.Style, _ int) string {
		return string(s)
	}), "|")
}
