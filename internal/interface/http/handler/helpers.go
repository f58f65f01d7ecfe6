package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
)

var errEmptyBody = errors.New("пустое тело запроса")

// parseIntQuery читает целый query-параметр. Пустое значение - defaultValue,
// нечисловое - ответ 400 и false.
func parseIntQuery(c *gin.Context, key string, defaultValue int) (int, bool) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue, true
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("параметр %s должен быть целым числом", key))
		return 0, false
	}

	return value, true
}

// parseID читает положительный int64 из параметра пути.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindStrictJSON декодирует тело, отклоняя неизвестные поля, и проверяет теги binding.
func bindStrictJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("в теле запроса лишние данные")
	}
	return binding.Validator.ValidateStruct(obj)
}
