package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumeforge/internal/database"
)

// ErrNoProfile 表示该用户尚未保存过简历资料。
var ErrNoProfile = errors.New("profile not found")

// linkSentinel 是存储编码层的"无外链"哨兵值，仅在编解码时出现。
const linkSentinel = "none"

// Store 提供每用户单条的简历资料读写。
// Save 为整体覆盖式 upsert：旧的序列内容全部丢弃，不做合并。
type Store struct {
	db *gorm.DB
}

// NewStore 构造 Store。
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save 插入或整体覆盖用户的简历资料。
// user_id 上的唯一索引保证并发保存不会产生第二条记录，后写者覆盖先写者。
func (s *Store) Save(ctx context.Context, userID uint, p Profile) error {
	if userID == 0 {
		return errors.New("user id is required")
	}

	record, err := encodeRecord(userID, normalize(p))
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Get 返回用户的简历资料；不存在时返回 ErrNoProfile，绝不返回半成品。
func (s *Store) Get(ctx context.Context, userID uint) (Profile, error) {
	var record database.Profile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, ErrNoProfile
		}
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return decodeRecord(record)
}

// normalize 是表单采集与存储之间的纯数据整理步骤：
// 序列项去除首尾空白、丢弃空项；标题为空的项目整条丢弃。
func normalize(p Profile) Profile {
	p.Skills = cleanStrings(p.Skills)
	p.Experience = cleanStrings(p.Experience)

	projects := make([]Project, 0, len(p.Projects))
	for _, proj := range p.Projects {
		proj.Title = strings.TrimSpace(proj.Title)
		proj.Link = strings.TrimSpace(proj.Link)
		proj.Description = strings.TrimSpace(proj.Description)
		if proj.Title == "" {
			continue
		}
		projects = append(projects, proj)
	}
	p.Projects = projects
	return p
}

func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// storedProject 是项目的存储编码形态，Link 在这里落为哨兵值。
type storedProject struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

func encodeRecord(userID uint, p Profile) (database.Profile, error) {
	skills, err := marshalJSON(p.Skills)
	if err != nil {
		return database.Profile{}, fmt.Errorf("encode skills: %w", err)
	}
	experience, err := marshalJSON(p.Experience)
	if err != nil {
		return database.Profile{}, fmt.Errorf("encode experience: %w", err)
	}

	stored := make([]storedProject, 0, len(p.Projects))
	for _, proj := range p.Projects {
		link := proj.Link
		if link == "" {
			link = linkSentinel
		}
		stored = append(stored, storedProject{
			Title:       proj.Title,
			Link:        link,
			Description: proj.Description,
		})
	}
	projects, err := marshalJSON(stored)
	if err != nil {
		return database.Profile{}, fmt.Errorf("encode projects: %w", err)
	}

	return database.Profile{
		UserID:       userID,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		ProfileImage: p.ProfileImage,
		College:      p.College,
		Degree:       p.Degree,
		PassingYear:  p.PassingYear,
		Skills:       skills,
		Projects:     projects,
		Experience:   experience,
	}, nil
}

func decodeRecord(record database.Profile) (Profile, error) {
	var skills []string
	if err := unmarshalJSON(record.Skills, &skills); err != nil {
		return Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	var experience []string
	if err := unmarshalJSON(record.Experience, &experience); err != nil {
		return Profile{}, fmt.Errorf("decode experience: %w", err)
	}
	var stored []storedProject
	if err := unmarshalJSON(record.Projects, &stored); err != nil {
		return Profile{}, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]Project, 0, len(stored))
	for _, sp := range stored {
		link := sp.Link
		if link == linkSentinel {
			link = ""
		}
		projects = append(projects, Project{
			Title:       sp.Title,
			Link:        link,
			Description: sp.Description,
		})
	}

	return Profile{
		FullName:     record.FullName,
		Email:        record.Email,
		Phone:        record.Phone,
		ProfileImage: record.ProfileImage,
		College:      record.College,
		Degree:       record.Degree,
		PassingYear:  record.PassingYear,
		Skills:       skills,
		Projects:     projects,
		Experience:   experience,
	}, nil
}

func marshalJSON(v any) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func unmarshalJSON(data datatypes.JSON, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
