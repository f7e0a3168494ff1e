package valueobjects

import "fmt"

// PackType controls how a recharge bought through the pack is consumed.
// A normal pack is redeemed in full when it is recharged.
type PackType string

const (
	TypeNormal PackType = "normal"
	TypeTimes  PackType = "times"
	TypeAmount PackType = "amount"
)

func (t PackType) String() string {
	return string(t)
}

func (t PackType) IsNormal() bool {
	return t == TypeNormal
}

func ParsePackType(raw string) (PackType, error) {
	switch PackType(raw) {
	case TypeNormal, TypeTimes, TypeAmount:
		return PackType(raw), nil
	}
	return "", fmt.Errorf("invalid pack type: %s", raw)
}

type PackState string

const (
	StateActive   PackState = "active"
	StateInactive PackState = "inactive"
)

func ParsePackState(raw string) (PackState, error) {
	switch PackState(raw) {
	case "":
		return StateActive, nil
	case StateActive, StateInactive:
		return PackState(raw), nil
	}
	return "", fmt.Errorf("invalid pack state: %s", raw)
}
