package protocol

import (
	stderrors "errors"
	"fmt"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
)

// Type identifies a message.
type Type string

const (
	TypeRegister    Type = "register"
	TypeUnregister  Type = "unregister"
	TypeScrollStart Type = "scroll_start"
	TypeScrollEnd   Type = "scroll_end"
	TypePosition    Type = "position"
	TypeCount       Type = "count"

	TypeHello    Type = "hello"
	TypeScrollTo Type = "scroll_to"
	TypeError    Type = "error"
)

// Inbound reports whether t is sent by clients.
func (t Type) Inbound() bool {
	switch t {
	case TypeRegister, TypeUnregister, TypeScrollStart, TypeScrollEnd, TypePosition, TypeCount:
		return true
	}
	return false
}

// Outbound reports whether t is sent by the server.
func (t Type) Outbound() bool {
	switch t {
	case TypeHello, TypeScrollTo, TypeError:
		return true
	}
	return false
}

// Message is the envelope for every frame. Only the fields relevant to
// Type are set; numeric fields are pointers so a missing value can be told
// apart from zero.
type Message struct {
	Type Type `json:"type"`

	Grid   string `json:"grid,omitempty"`
	Index  *int   `json:"index,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Count  *int   `json:"count,omitempty"`

	Session string `json:"session,omitempty"`
	Group   string `json:"group,omitempty"`

	Code  string `json:"code,omitempty"`
	Text  string `json:"message,omitempty"`
	Fatal bool   `json:"fatal,omitempty"`
}

func intPtr(n int) *int { return &n }

// Register announces a grid holding count items.
func Register(grid string, count int) *Message {
	return &Message{Type: TypeRegister, Grid: grid, Count: intPtr(count)}
}

// Unregister withdraws a grid.
func Unregister(grid string) *Message {
	return &Message{Type: TypeUnregister, Grid: grid}
}

// ScrollStart reports the start of a user gesture on grid.
func ScrollStart(grid string) *Message {
	return &Message{Type: TypeScrollStart, Grid: grid}
}

// ScrollEnd reports the end of a user gesture on grid.
func ScrollEnd(grid string) *Message {
	return &Message{Type: TypeScrollEnd, Grid: grid}
}

// Position reports grid's first visible item and the offset into it.
func Position(grid string, index, offset int) *Message {
	return &Message{Type: TypePosition, Grid: grid, Index: intPtr(index), Offset: intPtr(offset)}
}

// Count reports a new item count for grid.
func Count(grid string, count int) *Message {
	return &Message{Type: TypeCount, Grid: grid, Count: intPtr(count)}
}

// Hello greets a new connection.
func Hello(session, group string) *Message {
	return &Message{Type: TypeHello, Session: session, Group: group}
}

// ScrollTo tells the client to move grid.
func ScrollTo(grid string, index, offset int) *Message {
	return &Message{Type: TypeScrollTo, Grid: grid, Index: intPtr(index), Offset: intPtr(offset)}
}

// Error reports err to the client. Coded errors keep their code.
func Error(err error, fatal bool) *Message {
	m := &Message{Type: TypeError, Text: err.Error(), Fatal: fatal}
	var ge *errors.Error
	if stderrors.As(err, &ge) {
		m.Code = ge.Code
		m.Text = ge.Message
		if ge.Detail != "" {
			m.Text = fmt.Sprintf("%s: %s", ge.Message, ge.Detail)
		}
	}
	return m
}

// Validate checks that m carries the fields its type requires.
func (m *Message) Validate() error {
	switch m.Type {
	case "":
		return errors.New("E060").WithDetail("missing \"type\"")
	case TypeRegister, TypeCount:
		if err := m.validateGrid(); err != nil {
			return err
		}
		if m.Count == nil {
			return errors.New("E060").WithDetail(fmt.Sprintf("%s needs \"count\"", m.Type))
		}
	case TypeUnregister, TypeScrollStart, TypeScrollEnd:
		return m.validateGrid()
	case TypePosition, TypeScrollTo:
		if err := m.validateGrid(); err != nil {
			return err
		}
		if m.Index == nil || m.Offset == nil {
			return errors.New("E060").WithDetail(fmt.Sprintf("%s needs \"index\" and \"offset\"", m.Type))
		}
		if *m.Index < 0 || *m.Offset < 0 {
			return errors.New("E064").WithDetail(fmt.Sprintf("(%d,%d)", *m.Index, *m.Offset))
		}
	case TypeHello:
		if m.Session == "" {
			return errors.New("E060").WithDetail("hello needs \"session\"")
		}
	case TypeError:
		if m.Code == "" && m.Text == "" {
			return errors.New("E060").WithDetail("error needs \"code\" or \"message\"")
		}
	default:
		return errors.New("E061").WithDetail(fmt.Sprintf("%q", m.Type))
	}
	return nil
}

func (m *Message) validateGrid() error {
	if m.Grid == "" {
		return errors.New("E062").WithDetail(fmt.Sprintf("%s without \"grid\"", m.Type))
	}
	if len(m.Grid) > MaxGridIDLength {
		return errors.New("E062").WithDetail(fmt.Sprintf("grid id longer than %d bytes", MaxGridIDLength))
	}
	return nil
}

// String renders m for logs.
func (m *Message) String() string {
	switch m.Type {
	case TypePosition, TypeScrollTo:
		if m.Index != nil && m.Offset != nil {
			return fmt.Sprintf("%s %s (%d,%d)", m.Type, m.Grid, *m.Index, *m.Offset)
		}
	case TypeRegister, TypeCount:
		if m.Count != nil {
			return fmt.Sprintf("%s %s count=%d", m.Type, m.Grid, *m.Count)
		}
	case TypeError:
		return fmt.Sprintf("error %s %s", m.Code, m.Text)
	}
	if m.Grid != "" {
		return fmt.Sprintf("%s %s", m.Type, m.Grid)
	}
	return string(m.Type)
}
