package model

// Admin — учётная запись администратора CMS.
type Admin struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	License   bool   `json:"license"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AdminPayload — тело запроса создания/обновления администратора
// и профиля. Пустой пароль не передаётся.
type AdminPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	License  bool   `json:"license"`
}

// AdminForm — черновик администратора или профиля.
type AdminForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	License         bool   `json:"license"`
}

// Payload формирует тело запроса из черновика.
func (f AdminForm) Payload() AdminPayload {
	return AdminPayload{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		License:  f.License,
	}
}

// UnusedFiles — ответ со списком неиспользуемых файлов хранилища.
type UnusedFiles struct {
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// MessageResponse — ответ API с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse — ответ на успешный вход.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UploadResponse — ответ на загрузку файла.
type UploadResponse struct {
	URL string `json:"url"`
}
