package services

import (
	"errors"
	"testing"
	"time"

	"ordergrab/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRules() GrabRules {
	return GrabRules{Cooldown: time.Minute, FreezeThreshold: 3, SponsorPercent: decimal.Zero}
}

func testOrder(id uint, price, percent string) *models.Order {
	o := &models.Order{Title: "Phone case", Price: dec(price), CommissionPercent: dec(percent), IsActive: true}
	o.ID = id
	return o
}

func TestApplyGrabCreditsCommission(t *testing.T) {
	user := &models.User{Balance: dec("100")}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	res, err := ApplyGrab(user, testOrder(7, "80", "2.5"), testRules(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Commission.Equal(dec("2")) {
		t.Errorf("expected commission 2, got %s", res.Commission)
	}
	if !user.Balance.Equal(dec("102")) {
		t.Errorf("expected balance 102, got %s", user.Balance)
	}
	if len(user.GrabbedOrders) != 1 || user.GrabbedOrders[0] != 7 {
		t.Errorf("unexpected grabbed orders %v", user.GrabbedOrders)
	}
	if user.LastOrderGrabbedAt == nil || !user.LastOrderGrabbedAt.Equal(now) {
		t.Errorf("last grab time not recorded: %v", user.LastOrderGrabbedAt)
	}
	if res.Froze {
		t.Error("first grab must not freeze")
	}
}

func TestApplyGrabRoundsCommission(t *testing.T) {
	user := &models.User{Balance: dec("50")}
	res, err := ApplyGrab(user, testOrder(1, "33.33", "3.3"), testRules(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	// 33.33 * 3.3 / 100 = 1.09989
	if !res.Commission.Equal(dec("1.1")) {
		t.Errorf("expected 1.10, got %s", res.Commission)
	}
}

func TestApplyGrabInsufficientBalance(t *testing.T) {
	user := &models.User{Balance: dec("10")}

	_, err := ApplyGrab(user, testOrder(1, "10.01", "5"), testRules(), time.Now())
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if !user.Balance.Equal(dec("10")) || len(user.GrabbedOrders) != 0 || user.LastOrderGrabbedAt != nil {
		t.Error("user must be untouched on failure")
	}
}

func TestApplyGrabExactBalanceIsEnough(t *testing.T) {
	user := &models.User{Balance: dec("10")}
	if _, err := ApplyGrab(user, testOrder(1, "10", "5"), testRules(), time.Now()); err != nil {
		t.Fatalf("balance equal to price should be accepted: %v", err)
	}
}

func TestApplyGrabFreezesAfterThreshold(t *testing.T) {
	rules := testRules()
	rules.Cooldown = 0
	user := &models.User{Balance: dec("100")}
	now := time.Now()

	for i := 1; i <= 3; i++ {
		res, err := ApplyGrab(user, testOrder(uint(i), "50", "10"), rules, now)
		if err != nil {
			t.Fatalf("grab %d: %v", i, err)
		}
		if res.Froze {
			t.Fatalf("grab %d froze too early", i)
		}
	}
	if !user.Balance.Equal(dec("115")) {
		t.Fatalf("expected 115 after three grabs, got %s", user.Balance)
	}

	res, err := ApplyGrab(user, testOrder(4, "50", "10"), rules, now)
	if err != nil {
		t.Fatalf("fourth grab: %v", err)
	}
	if !res.Froze {
		t.Error("fourth grab should freeze the balance")
	}
	if !user.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", user.Balance)
	}
	if !user.FrozenBalance.Equal(dec("120")) {
		t.Errorf("expected frozen 120, got %s", user.FrozenBalance)
	}
	if len(user.GrabbedOrders) != 4 {
		t.Errorf("expected 4 grabbed orders, got %d", len(user.GrabbedOrders))
	}

	_, err = ApplyGrab(user, testOrder(5, "0", "10"), rules, now)
	if !errors.Is(err, ErrBalanceFrozen) {
		t.Errorf("expected ErrBalanceFrozen, got %v", err)
	}
}

func TestApplyGrabHigherThreshold(t *testing.T) {
	rules := GrabRules{FreezeThreshold: 4}
	user := &models.User{Balance: dec("100")}

	for i := 1; i <= 4; i++ {
		if _, err := ApplyGrab(user, testOrder(uint(i), "10", "1"), rules, time.Now()); err != nil {
			t.Fatal(err)
		}
	}
	if user.IsFrozen() {
		t.Fatal("four grabs must not freeze with threshold 4")
	}

	res, err := ApplyGrab(user, testOrder(5, "10", "1"), rules, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Froze || !user.Balance.IsZero() || !user.FrozenBalance.Equal(dec("100.5")) {
		t.Errorf("fifth grab should zero balance into frozen: balance=%s frozen=%s", user.Balance, user.FrozenBalance)
	}
}

func TestApplyGrabCooldown(t *testing.T) {
	last := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	user := &models.User{Balance: dec("100"), LastOrderGrabbedAt: &last}

	_, err := ApplyGrab(user, testOrder(1, "10", "1"), testRules(), last.Add(30*time.Second))
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected cooldown error, got %v", err)
	}

	if _, err := ApplyGrab(user, testOrder(1, "10", "1"), testRules(), last.Add(time.Minute)); err != nil {
		t.Fatalf("grab after cooldown should pass: %v", err)
	}
}

func TestApplyGrabBlocked(t *testing.T) {
	user := &models.User{Balance: dec("100"), IsBlocked: true}
	if _, err := ApplyGrab(user, testOrder(1, "10", "1"), testRules(), time.Now()); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}
}

func TestValidateOrder(t *testing.T) {
	cases := []struct {
		name  string
		order models.Order
		ok    bool
	}{
		{"valid", models.Order{Title: "Phone", Price: decimal.NewFromInt(100), CommissionPercent: decimal.NewFromInt(5)}, true},
		{"full percent", models.Order{Title: "Phone", Price: decimal.NewFromInt(100), CommissionPercent: decimal.NewFromInt(100)}, true},
		{"blank title", models.Order{Title: "  ", Price: decimal.NewFromInt(100), CommissionPercent: decimal.NewFromInt(5)}, false},
		{"zero price", models.Order{Title: "Phone", CommissionPercent: decimal.NewFromInt(5)}, false},
		{"percent over 100", models.Order{Title: "Phone", Price: decimal.NewFromInt(100), CommissionPercent: decimal.NewFromInt(101)}, false},
		{"zero percent", models.Order{Title: "Phone", Price: decimal.NewFromInt(100)}, false},
		{"sub-cent price", models.Order{Title: "Phone", Price: dec("0.004"), CommissionPercent: decimal.NewFromInt(5)}, false},
		{"sub-cent percent", models.Order{Title: "Phone", Price: decimal.NewFromInt(100), CommissionPercent: dec("0.004")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrder(&tc.order)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestApplyGrabRejectsUnpricedOrder(t *testing.T) {
	user := &models.User{Role: models.RolePlayer}
	order := &models.Order{Title: "Free sample", CommissionPercent: dec("5"), IsActive: true}

	for i := 0; i < 5; i++ {
		if _, err := ApplyGrab(user, order, testRules(), time.Now().Add(time.Duration(i)*time.Hour)); !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("grab %d: expected ErrInvalidOrder, got %v", i+1, err)
		}
	}
	if len(user.GrabbedOrders) != 0 {
		t.Errorf("rejected grabs must not grow the cycle, got %v", user.GrabbedOrders)
	}
}
