package render

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound 表示请求的模板不在固定目录中。
var ErrTemplateNotFound = errors.New("template not found")

// FormattingRuleSet 描述单个模板对重复区块的渲染规则。
// 新增模板时只需补一条目录项和一组规则，渲染路径无需加分支。
type FormattingRuleSet struct {
	SkillFragment      func(skill string) string
	ExperienceFragment func(entry string) string
}

// Template 是不可变的静态配置：骨架文本加上区块格式化规则。
type Template struct {
	Name     string
	Skeleton string
	Rules    FormattingRuleSet
}

const (
	experienceCardCompact = `<div>
    <h3 class="font-bold">%s</h3>
    <p class="text-sm text-gray-600 mt-1">My responsibilities included participating in campaigns, implementing digital marketing strategies, and analyzing market trends.</p>
</div>`

	experienceCardBulleted = `<div class="work-item mb-6">
    <h3 class="font-bold text-lg">%s</h3>
    <ul class="list-disc text-gray-700 mt-2 space-y-1 pl-5">
        <li>Placeholder description for this role. You can edit this text.</li>
    </ul>
</div>`
)

func bulletedExperience(entry string) string {
	return fmt.Sprintf(experienceCardBulleted, entry)
}

func compactExperience(entry string) string {
	return fmt.Sprintf(experienceCardCompact, entry)
}

// catalog 在进程启动时构建一次，之后只读。
var catalog = map[string]Template{
	"modern": {
		Name:     "modern",
		Skeleton: modernSkeleton,
		Rules: FormattingRuleSet{
			SkillFragment:      func(skill string) string { return "<div>" + skill + "</div>" },
			ExperienceFragment: bulletedExperience,
		},
	},
	"professional": {
		Name:     "professional",
		Skeleton: professionalSkeleton,
		Rules: FormattingRuleSet{
			SkillFragment:      func(skill string) string { return "<li>" + skill + "</li>" },
			ExperienceFragment: bulletedExperience,
		},
	},
	"creative": {
		Name:     "creative",
		Skeleton: creativeSkeleton,
		Rules: FormattingRuleSet{
			SkillFragment:      func(skill string) string { return "<p>" + skill + "</p>" },
			ExperienceFragment: compactExperience,
		},
	},
}

// templateNames 固定列表顺序，避免 map 遍历顺序抖动。
var templateNames = []string{"modern", "professional", "creative"}

// Get 按名称查找模板。
func Get(name string) (Template, error) {
	tpl, ok := catalog[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tpl, nil
}

// Names 返回目录中的全部模板名。
func Names() []string {
	names := make([]string, len(templateNames))
	copy(names, templateNames)
	return names
}
