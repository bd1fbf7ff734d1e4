package domain

import "time"

const (
	RoleUser       = "USER"
	RoleConsultant = "CONSULTANT"
	RoleAdmin      = "ADMIN"
)

const (
	IdentityKindCreate = "CREATE"
	IdentityKindUpdate = "UPDATE"
)

// Settlement gating. A settlement row only shows up in the "expired"/"left"
// admin queues once the meeting length, the waiting period and a one-day
// buffer have all elapsed.
const (
	WaitingPeriodBeforeWithdrawalToConsultantInDays = 8
	SettlementBufferInDays                          = 1
)

const (
	MeetingLengthInMinutes = 60
	RoomLeewayInMinutes    = 5
)

// Room token lifetime must cover the whole access window plus a margin and
// must stay below the external room service ceiling.
const (
	RoomTokenMarginInMinutes = 10
	RoomTokenMaxLifetime     = 24 * time.Hour
)

const (
	RatingMin = 1
	RatingMax = 5
)

// JST is the timezone settlement sender names are derived in.
var JST = time.FixedZone("JST", 9*60*60)
