package valueobjects

import "fmt"

type MemberState string

const (
	StateActive   MemberState = "active"
	StateDisabled MemberState = "disabled"
)

func (s MemberState) String() string {
	return string(s)
}

func ParseMemberState(raw string) (MemberState, error) {
	switch MemberState(raw) {
	case "":
		return StateActive, nil
	case StateActive, StateDisabled:
		return MemberState(raw), nil
	}
	return "", fmt.Errorf("状态必须是 active 或 disabled")
}
