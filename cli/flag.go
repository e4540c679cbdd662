package cli

import (
	"fmt"
	"strings"

	"github.com/poliscout/poliscout/discover"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// docTypeFlag validates the --type value at parse time, before any
// network work starts
type docTypeFlag struct {
	Value discover.DocumentType
}

// String implements pflag.Value.
func (f *docTypeFlag) String() string {
	return f.Value.String()
}

func (f *docTypeFlag) Set(value string) error {
	t, ok := discover.DocumentTypeFromString(value)
	if !ok {
		names := lo.Map(discover.AllDocumentTypes(), func(t discover.DocumentType, _ int) string {
			return t.String()
		})
		return fmt.Errorf("unknown document type %q, expected one of: %s", value, strings.Join(names, ", "))
	}
	f.Value = t
	return nil
}

func (f *docTypeFlag) Type() string {
	return "type"
}

var _ pflag.Value = &docTypeFlag{}
