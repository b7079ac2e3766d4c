package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjackrl/internal/deck"
	"github.com/lox/blackjackrl/internal/randutil"
)

// stackedRound builds a round whose shoe deals the given cards in order.
// DealInitial consumes the first four: two to the player, two to the dealer.
func stackedRound(t *testing.T, cards string) *Round {
	t.Helper()
	shoe := deck.NewStackedShoe(randutil.New(1), deck.MustParseCards(cards)...)
	return NewRound(shoe)
}

func TestRoundDealInitial(t *testing.T) {
	r := stackedRound(t, "AhKh5d6c")
	if err := r.DealInitial(); err != nil {
		t.Fatalf("DealInitial() error = %v", err)
	}
	if r.Phase() != PhaseInProgress {
		t.Fatalf("expected in-progress, got %s", r.Phase())
	}
	if got := r.PlayerHand().Score(); got != 21 {
		t.Errorf("player score = %d, want 21", got)
	}
	upcard, ok := r.DealerUpcard()
	if !ok || upcard.Rank != deck.Five {
		t.Errorf("dealer upcard = %v, %v; want 5", upcard, ok)
	}
}

func TestRoundDealInitialTwiceFails(t *testing.T) {
	r := stackedRound(t, "AhKh5d6c2h3h4h5h")
	if err := r.DealInitial(); err != nil {
		t.Fatalf("DealInitial() error = %v", err)
	}
	if err := r.DealInitial(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoundHitBeforeDealFails(t *testing.T) {
	r := stackedRound(t, "AhKh5d6c")
	if err := r.Hit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := r.Stand(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoundHitBustEndsRound(t *testing.T) {
	// Player Kh Qd, dealer 5d 6c, player draws 5s and busts on 25.
	r := stackedRound(t, "KhQd5d6c5s")
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}
	if err := r.Hit(); err != nil {
		t.Fatalf("Hit() error = %v", err)
	}
	if r.Phase() != PhaseTerminal {
		t.Fatalf("expected terminal after bust, got %s", r.Phase())
	}
	if err := r.Hit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("hit after bust: expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoundHitBelow21StaysInProgress(t *testing.T) {
	r := stackedRound(t, "2h3d5d6c4s")
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}
	if err := r.Hit(); err != nil {
		t.Fatal(err)
	}
	if r.Phase() != PhaseInProgress {
		t.Fatalf("expected in-progress, got %s", r.Phase())
	}
	if got := r.PlayerHand().Score(); got != 9 {
		t.Errorf("player score = %d, want 9", got)
	}
}

func TestRoundStandRunsDealerPolicy(t *testing.T) {
	tests := []struct {
		name        string
		cards       string
		wantDealer  int
		wantInRange bool
	}{
		// Dealer 5d 6c = 11, draws 9s (20) and stops.
		{"dealer draws to twenty", "KhQd5d6c9s", 20, true},
		// Dealer Kh 9c = 19, stands immediately.
		{"dealer stands pat", "2h3d" + "Kd9c", 19, true},
		// Dealer 5d 6c = 11, draws 5s (16), draws Ks (26) and busts.
		{"dealer busts", "2h3d5d6c5sKs", 26, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := stackedRound(t, tt.cards)
			if err := r.DealInitial(); err != nil {
				t.Fatal(err)
			}
			if err := r.Stand(); err != nil {
				t.Fatalf("Stand() error = %v", err)
			}
			if r.Phase() != PhaseTerminal {
				t.Fatalf("expected terminal after stand, got %s", r.Phase())
			}
			score := r.DealerHand().Score()
			if score != tt.wantDealer {
				t.Errorf("dealer score = %d, want %d", score, tt.wantDealer)
			}
			// Fixed policy invariant: the dealer never terminates below 17.
			if score < 17 {
				t.Errorf("dealer stopped below 17 at %d", score)
			}
			inRange := score >= 17 && score <= 21
			if inRange != tt.wantInRange {
				t.Errorf("dealer in [17,21] = %v, want %v", inRange, tt.wantInRange)
			}
		})
	}
}

func TestRoundOutcomeBeforeTerminalFails(t *testing.T) {
	r := stackedRound(t, "2h3d5d6c")
	if _, err := r.Outcome(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Outcome(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoundOutcomeRewardMapping(t *testing.T) {
	tests := []struct {
		name       string
		cards      string
		play       func(*Round) error
		wantReward int
		wantResult string
	}{
		{
			name:       "player busts",
			cards:      "KhQd5d6c5s",
			play:       func(r *Round) error { return r.Hit() },
			wantReward: RewardBust,
			wantResult: "Player busts! Dealer wins.",
		},
		{
			name:       "player wins on higher score",
			cards:      "KhQd" + "Kd8c",
			play:       func(r *Round) error { return r.Stand() },
			wantReward: RewardWin,
			wantResult: "Player wins!",
		},
		{
			name:       "player wins on dealer bust",
			cards:      "2h3d5d6c5sKs",
			play:       func(r *Round) error { return r.Stand() },
			wantReward: RewardWin,
			wantResult: "Player wins!",
		},
		{
			name:       "dealer wins on higher score",
			cards:      "KhQd" + "KdAc",
			play:       func(r *Round) error { return r.Stand() },
			wantReward: RewardLoss,
			wantResult: "Dealer wins.",
		},
		{
			name:       "exact tie",
			cards:      "KhQd" + "KdTc",
			play:       func(r *Round) error { return r.Stand() },
			wantReward: RewardTie,
			wantResult: "It's a tie.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := stackedRound(t, tt.cards)
			if err := r.DealInitial(); err != nil {
				t.Fatal(err)
			}
			if err := tt.play(r); err != nil {
				t.Fatal(err)
			}
			outcome, err := r.Outcome()
			if err != nil {
				t.Fatalf("Outcome() error = %v", err)
			}
			if outcome.Reward != tt.wantReward {
				t.Errorf("reward = %d, want %d", outcome.Reward, tt.wantReward)
			}
			if outcome.Result != tt.wantResult {
				t.Errorf("result = %q, want %q", outcome.Result, tt.wantResult)
			}
		})
	}
}

func TestRewardBranchesAreExhaustiveAndExclusive(t *testing.T) {
	// For every plausible (player, dealer) final score pair exactly one of the
	// four reward branches fires.
	for player := 4; player <= 30; player++ {
		for dealer := 17; dealer <= 30; dealer++ {
			branches := 0
			if player > 21 {
				branches++
			}
			if player <= 21 && (dealer > 21 || player > dealer) {
				branches++
			}
			if player <= 21 && dealer <= 21 && player < dealer {
				branches++
			}
			if player <= 21 && dealer <= 21 && player == dealer {
				branches++
			}
			if branches != 1 {
				t.Fatalf("scores (%d,%d): %d branches fired", player, dealer, branches)
			}
		}
	}
}
