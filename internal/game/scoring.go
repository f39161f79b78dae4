package game

// DefaultWinningScore is the match-winning threshold.
const DefaultWinningScore = 500

// Nil bid bonus/penalty and the cost of ten accumulated bags.
const (
	nilBidDelta   = 100
	bagGroupSize  = 10
	bagGroupCost  = 100
	pointsPerBid  = 10
)

// ScoreTotals is a per-partnership pair of cumulative values, indexed by Team.
type ScoreTotals struct {
	Scores [2]int
	Bags   [2]int
}

// ScoreHand computes the cumulative totals after a completed hand.
//
// bids must have all four bids placed and tricks the per-seat trick counts
// summing to 13. prev carries the totals from the previous hand (zero values
// for hand #1).
//
// Per partnership, in order: each partner's nil bid is settled individually
// (+100 for a successful nil, -100 for a failed one), then the combined bid
// is compared against combined tricks (made: +10/bid plus one point per
// overflow bag; set: -10/bid, no bag change), then accumulated bags are
// rolled over. Rollover is a loop, not a single conditional: every complete
// group of 10 bags costs 100 points and drains 10 bags, however many groups
// accumulated.
func ScoreHand(bids [4]int, tricks [4]int, prev ScoreTotals) ScoreTotals {
	next := prev
	for _, team := range []Team{TeamNS, TeamEW} {
		seats := teamSeats(team)
		delta := 0

		for _, seat := range seats {
			if bids[seat] == MinBid {
				if tricks[seat] == 0 {
					delta += nilBidDelta
				} else {
					delta -= nilBidDelta
				}
			}
		}

		combinedBid := bids[seats[0]] + bids[seats[1]]
		combinedTricks := tricks[seats[0]] + tricks[seats[1]]
		if combinedTricks >= combinedBid {
			if combinedBid > 0 {
				delta += combinedBid * pointsPerBid
			}
			overflow := combinedTricks - combinedBid
			delta += overflow
			next.Bags[team] += overflow
		} else {
			delta -= combinedBid * pointsPerBid
		}

		for next.Bags[team] >= bagGroupSize {
			delta -= bagGroupCost
			next.Bags[team] -= bagGroupSize
		}

		next.Scores[team] += delta
	}
	return next
}

func teamSeats(t Team) [2]Direction {
	if t == TeamNS {
		return [2]Direction{North, South}
	}
	return [2]Direction{East, West}
}

// Outcome is the match continuation decision after a scored hand.
type Outcome int

const (
	// OutcomeContinue means no winner yet: deal the next hand.
	OutcomeContinue Outcome = iota

	// OutcomeNSWin and OutcomeEWWin complete the match.
	OutcomeNSWin
	OutcomeEWWin
)

// DecideOutcome applies the match-end rule to cumulative scores: the match
// continues while both partnerships are under threshold, and also when both
// are at or over threshold but exactly tied. Otherwise the strictly higher
// score at or over threshold wins.
func DecideOutcome(scores [2]int, threshold int) Outcome {
	ns, ew := scores[TeamNS], scores[TeamEW]
	if ns < threshold && ew < threshold {
		return OutcomeContinue
	}
	if ns == ew {
		return OutcomeContinue
	}
	if ns > ew && ns >= threshold {
		return OutcomeNSWin
	}
	if ew > ns && ew >= threshold {
		return OutcomeEWWin
	}
	return OutcomeContinue
}
