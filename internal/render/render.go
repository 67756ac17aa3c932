package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resumeforge/internal/profile"
)

// ErrProfileRequired 表示用户尚未保存简历资料，渲染的前置条件不满足。
// 调用方应引导用户先完成资料填写，而不是渲染半空文档。
var ErrProfileRequired = errors.New("profile required")

// placeholderImage 在用户未上传头像时顶替 {{PROFILE_IMAGE}}。
const placeholderImage = "https://placehold.co/300x400/fce7f3/d68c7c?text=Image"

// Merge 将简历资料合并进模板骨架，返回完整的文档内容。
// 纯函数：不修改入参，输出只由 p 与 t 决定。
func Merge(p profile.Profile, t Template) string {
	image := p.ProfileImage
	if image == "" {
		image = placeholderImage
	}

	scalars := []struct {
		token string
		value string
	}{
		{"{{FULL_NAME}}", p.FullName},
		{"{{EMAIL}}", p.Email},
		{"{{PHONE}}", p.Phone},
		{"{{PROFILE_IMAGE}}", image},
		{"{{COLLEGE}}", p.College},
		{"{{DEGREE}}", p.Degree},
		{"{{PASSING_YEAR}}", p.PassingYear},
	}

	out := t.Skeleton
	for _, s := range scalars {
		out = strings.ReplaceAll(out, s.token, s.value)
	}

	var skills strings.Builder
	for _, skill := range p.Skills {
		skills.WriteString(t.Rules.SkillFragment(skill))
	}
	out = strings.Replace(out, "{{SKILLS_LOOP}}", skills.String(), 1)

	var experience strings.Builder
	for _, entry := range p.Experience {
		experience.WriteString(t.Rules.ExperienceFragment(entry))
	}
	out = strings.Replace(out, "{{EXPERIENCE_LOOP}}", experience.String(), 1)

	return out
}

// SuggestedName 给出渲染结果的默认文档名，如 "Ada's Modern Resume"。
func SuggestedName(fullName, templateName string) string {
	return fmt.Sprintf("%s's %s Resume", fullName, capitalize(templateName))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ProfileSource 抽象简历资料的读取方，渲染服务只依赖这一个方法。
type ProfileSource interface {
	Get(ctx context.Context, userID uint) (profile.Profile, error)
}

// Result 是一次渲染的产物：文档内容与建议的显示名。
type Result struct {
	Content       string `json:"content"`
	SuggestedName string `json:"suggested_name"`
}

// Service 在渲染前检查资料是否存在，把模板目录与资料读取串起来。
type Service struct {
	profiles ProfileSource
}

// NewService 构造渲染服务。
func NewService(profiles ProfileSource) *Service {
	return &Service{profiles: profiles}
}

// RenderForUser 用指定模板渲染用户的简历资料。
// 模板未知返回 ErrTemplateNotFound；资料缺失返回 ErrProfileRequired，不产生部分输出。
func (s *Service) RenderForUser(ctx context.Context, userID uint, templateName string) (Result, error) {
	tpl, err := Get(templateName)
	if err != nil {
		return Result{}, err
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNoProfile) {
			return Result{}, ErrProfileRequired
		}
		return Result{}, fmt.Errorf("load profile: %w", err)
	}

	return Result{
		Content:       Merge(p, tpl),
		SuggestedName: SuggestedName(p.FullName, tpl.Name),
	}, nil
}
