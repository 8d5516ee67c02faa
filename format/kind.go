package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshuapare/neptkit/format/cl3"
	"github.com/joshuapare/neptkit/format/stcm"
	"github.com/joshuapare/neptkit/format/stsc"
)

// Kind identifies a file format.
type Kind int

const (
	KindUnknown Kind = iota
	KindCL3
	KindSTCM
	KindSTSC
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindCL3:     "cl3",
	KindSTCM:    "stcm",
	KindSTSC:    "stsc",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name as printed by Kind.String back to a Kind. The
// empty string and "auto" yield KindUnknown, meaning detect.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return KindUnknown, nil
	}
	for k, name := range kindNames {
		if name == s && k != KindUnknown {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown format %q", s)
}

// Detect guesses the kind of data from its leading signature.
func Detect(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, cl3.Magic):
		return KindCL3
	case bytes.HasPrefix(data, stcm.Magic):
		return KindSTCM
	case bytes.HasPrefix(data, stsc.Magic):
		return KindSTSC
	default:
		return KindUnknown
	}
}
