package catalog

import (
	"reflect"
	"testing"

	"github.com/toolhub-ai/toolhub/internal/testutil"
)

func TestSmartScore_Deterministic(t *testing.T) {
	tool := testutil.NewTool(
		testutil.WithRating(4.8),
		testutil.WithPrice(0),
		testutil.WithReviews(2050),
		testutil.WithFlags(true, true),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -10)),
	)

	first := SmartScore(tool, testNow)
	second := SmartScore(tool, testNow)
	if first != second {
		t.Errorf("SmartScore not deterministic: %d then %d", first, second)
	}
}

func TestSmartScore_FullBlend(t *testing.T) {
	// rating 48 + free 15 + log10(2051)*5 ≈ 16.56 + featured 25
	// + newness (20-10) + popular 20 = 134.56 → 135.
	tool := testutil.NewTool(
		testutil.WithRating(4.8),
		testutil.WithPrice(0),
		testutil.WithReviews(2050),
		testutil.WithFlags(true, true),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -10)),
	)
	if got := SmartScore(tool, testNow); got != 135 {
		t.Errorf("SmartScore = %d, want 135", got)
	}
}

func TestSmartScore_RatingOnly(t *testing.T) {
	tool := testutil.NewTool(
		testutil.WithRating(4.0),
		testutil.WithPrice(5),
		testutil.WithReviews(0),
		testutil.WithFlags(false, false),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -40)),
	)
	if got := SmartScore(tool, testNow); got != 40 {
		t.Errorf("SmartScore = %d, want 40", got)
	}
}

func TestSmartScore_FreeBonus(t *testing.T) {
	paid := testutil.NewTool(
		testutil.WithRating(4.0),
		testutil.WithPrice(9),
		testutil.WithReviews(0),
		testutil.WithFlags(false, false),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -40)),
	)
	free := paid
	free.Price = 0

	if diff := SmartScore(free, testNow) - SmartScore(paid, testNow); diff != 15 {
		t.Errorf("free bonus = %d, want 15", diff)
	}
}

func TestSmartScore_ReviewVolumeCapped(t *testing.T) {
	// Both review counts exceed the 20-point popularity cap, so the scores
	// must be identical.
	big := testutil.NewTool(
		testutil.WithRating(4.0),
		testutil.WithPrice(9),
		testutil.WithReviews(1_000_000),
		testutil.WithFlags(false, false),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -40)),
	)
	bigger := big
	bigger.Reviews = 100_000_000

	if SmartScore(big, testNow) != SmartScore(bigger, testNow) {
		t.Errorf("review volume not capped: %d vs %d",
			SmartScore(big, testNow), SmartScore(bigger, testNow))
	}
}

func TestSmartScore_NewnessDecay(t *testing.T) {
	base := testutil.NewTool(
		testutil.WithRating(4.0),
		testutil.WithPrice(9),
		testutil.WithReviews(0),
		testutil.WithFlags(false, false),
	)

	tests := []struct {
		ageDays int
		want    int
	}{
		{0, 60},  // 40 + full newness bonus 20
		{10, 50}, // 40 + 10
		{19, 41}, // 40 + 1
		{25, 40}, // bonus already decayed to zero
		{30, 40},
		{365, 40},
	}
	for _, tt := range tests {
		tool := base
		tool.CreatedAt = testNow.AddDate(0, 0, -tt.ageDays)
		if got := SmartScore(tool, testNow); got != tt.want {
			t.Errorf("SmartScore(age %dd) = %d, want %d", tt.ageDays, got, tt.want)
		}
	}
}

func TestWhyReasons_PriorityOrderAndCap(t *testing.T) {
	t.Run("first two triggered win", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(4.8),
			testutil.WithPrice(0),
			testutil.WithReviews(2050),
			testutil.WithFlags(true, true),
			testutil.WithDescription("أداة تعليم للطلاب"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -10)),
		)
		want := []string{ReasonHighRating, ReasonFree}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons = %v, want %v", got, want)
		}
	})

	t.Run("affordable price tier", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(4.0),
			testutil.WithPrice(10),
			testutil.WithReviews(50),
			testutil.WithFlags(false, false),
			testutil.WithDescription("مولد صور"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -90)),
		)
		want := []string{ReasonAffordable}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons = %v, want %v", got, want)
		}
	})

	t.Run("education keyword match", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(3.0),
			testutil.WithPrice(25),
			testutil.WithReviews(50),
			testutil.WithFlags(false, false),
			testutil.WithDescription("منصة دراسة تفاعلية"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -90)),
		)
		want := []string{ReasonEducational}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons = %v, want %v", got, want)
		}
	})

	t.Run("recent tool only", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(3.0),
			testutil.WithPrice(25),
			testutil.WithReviews(50),
			testutil.WithFlags(false, false),
			testutil.WithDescription("مولد صور"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -5)),
		)
		want := []string{ReasonNew}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons = %v, want %v", got, want)
		}
	})

	t.Run("nothing fires", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(3.0),
			testutil.WithPrice(25),
			testutil.WithReviews(50),
			testutil.WithFlags(false, false),
			testutil.WithDescription("مولد صور"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -90)),
		)
		if got := WhyReasons(tool, testNow); len(got) != 0 {
			t.Errorf("WhyReasons = %v, want empty", got)
		}
	})

	t.Run("review volume tiers", func(t *testing.T) {
		tool := testutil.NewTool(
			testutil.WithRating(3.0),
			testutil.WithPrice(25),
			testutil.WithReviews(150),
			testutil.WithFlags(false, false),
			testutil.WithDescription("مولد صور"),
			testutil.WithCreatedAt(testNow.AddDate(0, 0, -90)),
		)
		want := []string{ReasonWidelyUsed}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons(150 reviews) = %v, want %v", got, want)
		}

		tool.Reviews = 1500
		want = []string{ReasonVeryPopular}
		if got := WhyReasons(tool, testNow); !reflect.DeepEqual(got, want) {
			t.Errorf("WhyReasons(1500 reviews) = %v, want %v", got, want)
		}
	})
}
