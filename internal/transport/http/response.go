package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. The wording matches the existing web client.
const (
	msgLoginOK          = "Đăng nhập thành công"
	msgBadCredentials   = "Sai username hoặc password"
	msgLoginFailed      = "Lỗi server khi đăng nhập"
	msgRegisterOK       = "Đăng ký thành công"
	msgUsernameTaken    = "Username đã tồn tại"
	msgMissingFields    = "Username và password là bắt buộc"
	msgRegisterFailed   = "Lỗi server khi đăng ký"
	msgUserNotFound     = "User không tồn tại"
	msgProfileFailed    = "Lỗi server khi lấy profile"
	msgProfileUpdated   = "Cập nhật hồ sơ thành công"
	msgProfileUpdFailed = "Lỗi server khi cập nhật profile"
	msgNotAnImage       = "Chỉ được upload file hình ảnh!"
	msgFileTooLarge     = "File ảnh không được vượt quá 5MB"
	msgBadHighScore     = "highScore không hợp lệ"
	msgListFailed       = "Lỗi server khi lấy danh sách câu hỏi"
	msgInvalidID        = "ID không hợp lệ"
	msgQuestionNotFound = "Không tìm thấy câu hỏi"
	msgGetFailed        = "Lỗi server khi lấy câu hỏi"
	msgCreated          = "Thêm câu hỏi thành công!"
	msgCreateFailed     = "Lỗi server khi thêm câu hỏi"
	msgInvalidAnswer    = "Đáp án đúng không hợp lệ!"
	msgInvalidQuestion  = "Dữ liệu câu hỏi không hợp lệ"
	msgUpdated          = "Cập nhật câu hỏi thành công!"
	msgUpdateFailed     = "Lỗi server khi cập nhật câu hỏi"
	msgDeleted          = "Xóa câu hỏi thành công!"
	msgDeleteNotFound   = "Không tìm thấy câu hỏi để xóa"
	msgDeleteFailed     = "Lỗi server khi xóa câu hỏi"
	msgBadBody          = "Dữ liệu gửi lên không hợp lệ"
	msgRouteNotFound    = "Không tìm thấy"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func notFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, message)
}

func internalError(c *gin.Context, message string) {
	fail(c, http.StatusInternalServerError, message)
}
