package cli

import (
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/window"
	"github.com/spf13/pflag"
)

// windowFlag parses --window at flag time so a bad token fails before any
// store access.
type windowFlag struct {
	filter domain.TimeFilter
}

var _ pflag.Value = (*windowFlag)(nil)

func newWindowFlag(def domain.TimeFilter) *windowFlag {
	return &windowFlag{filter: def}
}

func (w *windowFlag) String() string { return string(w.filter) }

func (w *windowFlag) Set(s string) error {
	f, err := window.ParseFilter(s)
	if err != nil {
		return err
	}
	w.filter = f
	return nil
}

func (w *windowFlag) Type() string { return "window" }
