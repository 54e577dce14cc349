package weave

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/weave-escrow/errors"
)

// conditionFormat matches "<extension>/<type>/<data>". Data is binary and
// may hold any byte, a newline included.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names who may authorize an action. A signature condition is
// owned by the holder of a key, a program condition such as the swap
// custody is owned by the program that derived it and is satisfied
// without any signature.
type Condition []byte

// NewCondition joins the three parts of a condition.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into extension, type and data.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInvalidInput, "malformed condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Validate fails if the condition cannot be parsed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the account address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(other Condition) bool {
	return bytes.Equal(c, other)
}

// String keeps extension and type readable and prints data as hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// MarshalJSON encodes the condition in its String form. A nil condition
// is an empty string.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "condition json: %s", err)
	}
	parsed, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// parseCondition reads the String form of a condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "condition %q is not ext/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "condition data: %s", err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}
