package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resumeforge/internal/profile"
)

func sampleProfile() profile.Profile {
	return profile.Profile{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		College:     "University of London",
		Degree:      "B.Sc. Mathematics",
		PassingYear: "1840",
		Skills:      []string{"Analysis", "Programming"},
		Experience:  []string{"Analyst at Babbage & Co"},
	}
}

func TestMerge_ReplacesAllPlaceholders(t *testing.T) {
	for _, name := range Names() {
		tpl, err := Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		out := Merge(sampleProfile(), tpl)
		if idx := strings.Index(out, "{{"); idx != -1 {
			end := idx + 40
			if end > len(out) {
				end = len(out)
			}
			t.Fatalf("template %s: unreplaced placeholder near %q", name, out[idx:end])
		}
		if !strings.Contains(out, "Ada Lovelace") {
			t.Fatalf("template %s: full name missing", name)
		}
	}
}

func TestMerge_ScalarsReplacedGlobally(t *testing.T) {
	tpl := Template{
		Name:     "test",
		Skeleton: "<h1>{{FULL_NAME}}</h1><footer>{{FULL_NAME}}</footer>{{SKILLS_LOOP}}{{EXPERIENCE_LOOP}}",
		Rules: FormattingRuleSet{
			SkillFragment:      func(s string) string { return s },
			ExperienceFragment: func(e string) string { return e },
		},
	}
	out := Merge(sampleProfile(), tpl)
	if got := strings.Count(out, "Ada Lovelace"); got != 2 {
		t.Fatalf("expected full name twice, got %d in %q", got, out)
	}
}

func TestMerge_SkillFanOutPreservesOrder(t *testing.T) {
	tpl, err := Get("professional")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p := sampleProfile()
	p.Skills = []string{"Go", "SQL", "Docker"}

	out := Merge(p, tpl)
	want := "<li>Go</li><li>SQL</li><li>Docker</li>"
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in output", want)
	}
}

func TestMerge_PerTemplateSkillFragments(t *testing.T) {
	p := sampleProfile()
	p.Skills = []string{"Go"}

	cases := map[string]string{
		"modern":       "<div>Go</div>",
		"professional": "<li>Go</li>",
		"creative":     "<p>Go</p>",
	}
	for name, want := range cases {
		tpl, err := Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if out := Merge(p, tpl); !strings.Contains(out, want) {
			t.Fatalf("template %s: expected fragment %q", name, want)
		}
	}
}

func TestMerge_ExperienceCardsDifferPerTemplate(t *testing.T) {
	p := sampleProfile()
	p.Experience = []string{"Engineer at Acme"}

	creative, _ := Get("creative")
	if out := Merge(p, creative); !strings.Contains(out, "My responsibilities included") {
		t.Fatalf("creative template: expected compact card")
	}
	modern, _ := Get("modern")
	if out := Merge(p, modern); !strings.Contains(out, "Placeholder description for this role") {
		t.Fatalf("modern template: expected bulleted card")
	}
}

func TestMerge_EmptySequencesYieldEmptyBlocks(t *testing.T) {
	tpl := Template{
		Name:     "test",
		Skeleton: "A[{{SKILLS_LOOP}}]B[{{EXPERIENCE_LOOP}}]",
		Rules: FormattingRuleSet{
			SkillFragment:      func(s string) string { return s },
			ExperienceFragment: func(e string) string { return e },
		},
	}
	p := sampleProfile()
	p.Skills = nil
	p.Experience = nil
	if out := Merge(p, tpl); out != "A[]B[]" {
		t.Fatalf("expected empty blocks, got %q", out)
	}
}

func TestMerge_DefaultsProfileImage(t *testing.T) {
	tpl, err := Get("modern")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	p := sampleProfile()
	p.ProfileImage = ""
	if out := Merge(p, tpl); !strings.Contains(out, placeholderImage) {
		t.Fatalf("expected placeholder image in output")
	}

	p.ProfileImage = "https://cdn.example.com/me.png"
	out := Merge(p, tpl)
	if !strings.Contains(out, p.ProfileImage) || strings.Contains(out, placeholderImage) {
		t.Fatalf("expected user image, got placeholder")
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	tpl, err := Get("creative")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	before := tpl.Skeleton
	p := sampleProfile()

	first := Merge(p, tpl)
	second := Merge(p, tpl)
	if first != second {
		t.Fatalf("merge is not deterministic")
	}
	if tpl.Skeleton != before {
		t.Fatalf("skeleton mutated")
	}
}

func TestSuggestedName(t *testing.T) {
	if got := SuggestedName("Ada Lovelace", "modern"); got != "Ada Lovelace's Modern Resume" {
		t.Fatalf("unexpected suggested name %q", got)
	}
	if got := SuggestedName("Bo", "professional"); got != "Bo's Professional Resume" {
		t.Fatalf("unexpected suggested name %q", got)
	}
}

func TestGet_UnknownTemplate(t *testing.T) {
	if _, err := Get("vintage"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

type fakeProfiles struct {
	p   profile.Profile
	err error
}

func (f fakeProfiles) Get(ctx context.Context, userID uint) (profile.Profile, error) {
	return f.p, f.err
}

func TestRenderForUser_RequiresProfile(t *testing.T) {
	svc := NewService(fakeProfiles{err: profile.ErrNoProfile})
	if _, err := svc.RenderForUser(context.Background(), 1, "modern"); !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}
}

func TestRenderForUser_UnknownTemplateCheckedFirst(t *testing.T) {
	svc := NewService(fakeProfiles{err: fmt.Errorf("store should not be called")})
	if _, err := svc.RenderForUser(context.Background(), 1, "vintage"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderForUser_Success(t *testing.T) {
	svc := NewService(fakeProfiles{p: sampleProfile()})
	res, err := svc.RenderForUser(context.Background(), 1, "creative")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.SuggestedName != "Ada Lovelace's Creative Resume" {
		t.Fatalf("unexpected suggested name %q", res.SuggestedName)
	}
	if !strings.Contains(res.Content, "Ada Lovelace") {
		t.Fatalf("content missing profile data")
	}
}
