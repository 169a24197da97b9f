package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// dialectValue is a pflag.Value for dialect flags, validated at flag-parse
// time so commands never see an unknown dialect.
type dialectValue struct {
	dialect *document.Dialect
}

var _ pflag.Value = (*dialectValue)(nil)

func newDialectValue(d *document.Dialect) *dialectValue {
	return &dialectValue{dialect: d}
}

func (v *dialectValue) String() string {
	if v.dialect == nil {
		return ""
	}
	return string(*v.dialect)
}

func (v *dialectValue) Set(s string) error {
	d := document.Dialect(s)
	if !d.Valid() {
		return fmt.Errorf("unknown dialect %q (supported: logseq, zk, obsidian)", s)
	}
	*v.dialect = d
	return nil
}

func (v *dialectValue) Type() string {
	return "dialect"
}
