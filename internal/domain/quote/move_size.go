package quote

import "github.com/shopspring/decimal"

// MoveSize is the customer's home or office size
type MoveSize string

const (
	MoveSizeStudio   MoveSize = "studio"
	MoveSizeOneBed   MoveSize = "1br"
	MoveSizeTwoBed   MoveSize = "2br"
	MoveSizeThreeBed MoveSize = "3br"
	MoveSizeFourBed  MoveSize = "4br"
	MoveSizeOffice   MoveSize = "office"
)

// CrewEstimate is the default crew, duration and trucks for a move size
type CrewEstimate struct {
	CrewSize   int
	Hours      decimal.Decimal
	TruckCount int
}

var crewEstimates = map[MoveSize]CrewEstimate{
	MoveSizeStudio:   {CrewSize: 2, Hours: decimal.NewFromInt(3), TruckCount: 1},
	MoveSizeOneBed:   {CrewSize: 2, Hours: decimal.NewFromInt(4), TruckCount: 1},
	MoveSizeTwoBed:   {CrewSize: 3, Hours: decimal.NewFromInt(5), TruckCount: 1},
	MoveSizeThreeBed: {CrewSize: 4, Hours: decimal.NewFromInt(7), TruckCount: 1},
	MoveSizeFourBed:  {CrewSize: 4, Hours: decimal.NewFromInt(9), TruckCount: 2},
	MoveSizeOffice:   {CrewSize: 5, Hours: decimal.NewFromInt(10), TruckCount: 2},
}

// IsValid returns true if the move size is known
func (s MoveSize) IsValid() bool {
	_, ok := crewEstimates[s]
	return ok
}

// Estimate returns the default crew estimate for the size
func (s MoveSize) Estimate() CrewEstimate {
	return crewEstimates[s]
}
