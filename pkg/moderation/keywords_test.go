package moderation

import (
	"context"
	"strings"
	"testing"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
)

// fakeRuleSource serves a fixed operator rule set
type fakeRuleSource struct {
	terms map[models.RuleCategory][]string
	err   error
}

func (f *fakeRuleSource) ActiveByCategory(ctx context.Context) (map[models.RuleCategory][]string, error) {
	return f.terms, f.err
}

func newTestEngine() *KeywordEngine {
	return NewKeywordEngine(NewSnapshotStore(nil))
}

// TestClassifyClean verifies that harmless content produces no violation
func TestClassifyClean(t *testing.T) {
	engine := newTestEngine()

	cases := []string{
		"",
		"   ",
		"xin chào mọi người",
		"hôm nay trời đẹp quá",
	}

	for _, content := range cases {
		verdict := engine.Classify(content)
		if verdict.IsViolation {
			t.Errorf("Classify(%q) flagged a clean message: %+v", content, verdict)
		}
	}
}

// TestClassifyProfanity verifies the profanity check and its confidence
func TestClassifyProfanity(t *testing.T) {
	engine := newTestEngine()

	verdict := engine.Classify("thằng này đồ ngu thật")

	if !verdict.IsViolation {
		t.Fatal("expected a violation")
	}
	if verdict.ViolationType != models.ViolationProfanity {
		t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationProfanity)
	}
	if verdict.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", verdict.Confidence)
	}
	if !strings.HasPrefix(verdict.Reason, "Chứa từ ngữ thô tục: ") {
		t.Errorf("unexpected reason: %q", verdict.Reason)
	}
}

// TestClassifyOrdering verifies that an all-caps profane message is
// reported as profanity, not shouting
func TestClassifyOrdering(t *testing.T) {
	engine := newTestEngine()

	verdict := engine.Classify("BẠN LÀ ĐỒ NGU NGỐC VÀ TÔI GHÉT BẠN")

	if !verdict.IsViolation {
		t.Fatal("expected a violation")
	}
	if verdict.ViolationType != models.ViolationProfanity {
		t.Errorf("ViolationType = %v, want %v (profanity wins over shouting)", verdict.ViolationType, models.ViolationProfanity)
	}
}

// TestClassifyHarassment verifies the two-distinct-terms requirement
func TestClassifyHarassment(t *testing.T) {
	engine := newTestEngine()

	t.Run("single term is not enough", func(t *testing.T) {
		verdict := engine.Classify("bạn thật dễ thương")
		if verdict.IsViolation {
			t.Errorf("one harassment term should not fire: %+v", verdict)
		}
	})

	t.Run("two terms fire", func(t *testing.T) {
		verdict := engine.Classify("làm quen nhé, em dễ thương lắm")
		if !verdict.IsViolation {
			t.Fatal("expected a violation")
		}
		if verdict.ViolationType != models.ViolationHarassment {
			t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationHarassment)
		}
		if verdict.Confidence != 0.8 {
			t.Errorf("Confidence = %v, want 0.8", verdict.Confidence)
		}
		if !strings.HasPrefix(verdict.Reason, "Chứa nội dung gạ gẫm: ") {
			t.Errorf("unexpected reason: %q", verdict.Reason)
		}
	})
}

// TestClassifyOffensive verifies the offensive check
func TestClassifyOffensive(t *testing.T) {
	engine := newTestEngine()

	verdict := engine.Classify("mày bị thần kinh à")

	if !verdict.IsViolation {
		t.Fatal("expected a violation")
	}
	if verdict.ViolationType != models.ViolationOffensive {
		t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationOffensive)
	}
	if !strings.HasPrefix(verdict.Reason, "Chứa nội dung xúc phạm: ") {
		t.Errorf("unexpected reason: %q", verdict.Reason)
	}
}

// TestClassifyShouting verifies the all-caps check boundaries
func TestClassifyShouting(t *testing.T) {
	engine := newTestEngine()

	t.Run("long all-caps fires", func(t *testing.T) {
		verdict := engine.Classify("XIN CHÀO TẤT CẢ CÁC BẠN NHÉ")
		if !verdict.IsViolation {
			t.Fatal("expected a violation")
		}
		if verdict.ViolationType != models.ViolationSpamShouting {
			t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationSpamShouting)
		}
		if verdict.Confidence != 0.6 {
			t.Errorf("Confidence = %v, want 0.6", verdict.Confidence)
		}
	})

	t.Run("ten characters or fewer does not fire", func(t *testing.T) {
		if verdict := engine.Classify("HELLOHELLO"); verdict.IsViolation {
			t.Errorf("10-rune message should not fire: %+v", verdict)
		}
	})

	t.Run("digits only does not fire", func(t *testing.T) {
		if verdict := engine.Classify("123456789012345"); verdict.IsViolation {
			t.Errorf("uncased message should not fire: %+v", verdict)
		}
	})

	t.Run("mixed case does not fire", func(t *testing.T) {
		if verdict := engine.Classify("This Is Not Shouting At All"); verdict.IsViolation {
			t.Errorf("mixed case should not fire: %+v", verdict)
		}
	})
}

// TestOperatorRulesMerge verifies that refreshed operator keywords are
// picked up by classification
func TestOperatorRulesMerge(t *testing.T) {
	source := &fakeRuleSource{
		terms: map[models.RuleCategory][]string{
			models.CategoryProfanity: {"Nonsenseword"},
		},
	}

	store := NewSnapshotStore(source)
	engine := NewKeywordEngine(store)

	if verdict := engine.Classify("this contains nonsenseword here"); verdict.IsViolation {
		t.Fatal("operator rule should not apply before refresh")
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	verdict := engine.Classify("this contains NonsenseWord here")
	if !verdict.IsViolation {
		t.Fatal("operator rule should apply after refresh")
	}
	if verdict.ViolationType != models.ViolationProfanity {
		t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationProfanity)
	}
}

// TestSnapshotDeduplicates verifies lowercasing and deduplication at
// snapshot build time
func TestSnapshotDeduplicates(t *testing.T) {
	snap := NewRuleSnapshot(map[models.RuleCategory][]string{
		models.CategorySpam: {"Foo", "foo", "  foo  ", "bar", ""},
	})

	terms := snap.Terms(models.CategorySpam)
	if len(terms) != 2 {
		t.Fatalf("Terms = %v, want [foo bar]", terms)
	}
	if terms[0] != "foo" || terms[1] != "bar" {
		t.Errorf("Terms = %v, want [foo bar]", terms)
	}
}
