package types

import (
	"slices"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
)

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventDepositBenefitAmount EventType = "DepositBenefitAmount"
	EventAddNewShares         EventType = "AddNewShares"
	EventSetStreamingTime     EventType = "SetStreamingTime"
	EventWithdraw             EventType = "Withdraw"
)

var knownEventTypes = []EventType{
	EventDepositBenefitAmount,
	EventAddNewShares,
	EventSetStreamingTime,
	EventWithdraw,
}

func IsKnownEventType(eventType string) bool {
	return slices.Contains(knownEventTypes, EventType(eventType))
}

// Event is the envelope of everything the ledger emits after a commit.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	InstanceID string    `json:"instanceId"`
	CreatedAt  time.Time `json:"createdAt"`
	Payload    any       `json:"payload"`
}

// NewEvent stamps the event with a UUIDv7. Ids of events created by one
// process increase strictly, even within the same millisecond.
func NewEvent(instanceID string, eventType EventType, payload any, createdAt time.Time) *Event {
	return &Event{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Type:       eventType,
		InstanceID: instanceID,
		CreatedAt:  createdAt.UTC(),
		Payload:    payload,
	}
}

type DepositBenefitAmountEvent struct {
	Depositor string       `json:"depositor"`
	Value     sdkmath.Uint `json:"value"`
}

type AddNewSharesEvent struct {
	Beneficiary string       `json:"beneficiary"`
	Amount      sdkmath.Uint `json:"amount"`
}

type SetStreamingTimeEvent struct {
	StreamingTime uint64 `json:"streamingTime"`
}

type WithdrawEvent struct {
	User                string       `json:"user"`
	TotalAmount         sdkmath.Uint `json:"totalAmount"`
	PossibleAmount      sdkmath.Uint `json:"possibleAmount"`
	CurrentWithdrawTime int64        `json:"currentWithdrawTime"`
	LastWithdrawTime    int64        `json:"lastWithdrawTime"`
}
