package profile

// Profile 表示用户的结构化简历资料。
// 三个序列字段保持保存时的顺序，读取后与保存前逐项一致。
type Profile struct {
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"` // 自包含的 data URL，为空表示未上传
	College      string    `json:"college"`
	Degree       string    `json:"degree"`
	PassingYear  string    `json:"passing_year"`
	Skills       []string  `json:"skills"`
	Projects     []Project `json:"projects"`
	Experience   []string  `json:"experience"`
}

// Project 表示一段项目经历。Link 为空表示没有外链；
// 存储层使用 "none" 哨兵值，编码细节不会泄漏到这里。
type Project struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
