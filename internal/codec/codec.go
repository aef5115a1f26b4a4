package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/model"
)

// ErrCorruptFormat 持久化数据无法解析（缺少必需字段或计数字段非数字）
var ErrCorruptFormat = errors.New("用户数据格式损坏")

// Header users.csv 的固定表头，与 model.User 字段顺序一致
var Header = []string{
	"username",
	"password",
	"grade",
	"target_role",
	"createTaskNum",
	"uploadedResumeNum",
	"status",
	"register_time",
	"last_login",
}

// DecodeAll 将 CSV 内容解析为用户记录列表
// 空内容视为空集；表头缺列、计数字段非数字、username 为空均返回 ErrCorruptFormat
func DecodeAll(data []byte) ([]*model.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if err := validateHeader(data); err != nil {
		return nil, err
	}

	var users []*model.User
	if err := gocsv.UnmarshalBytes(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFormat, err)
	}

	for i, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("%w: 第 %d 行缺少 username", ErrCorruptFormat, i+2)
		}
		if u.CreateTaskNum < 0 || u.UploadedResumeNum < 0 {
			return nil, fmt.Errorf("%w: 第 %d 行计数字段为负数", ErrCorruptFormat, i+2)
		}
	}

	return users, nil
}

// EncodeAll 将用户记录列表序列化为 CSV 内容（总是写出表头）
// 对合法记录集不会失败
func EncodeAll(users []*model.User) ([]byte, error) {
	if len(users) == 0 {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(Header); err != nil {
			return nil, err
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	return gocsv.MarshalBytes(&users)
}

// validateHeader 校验表头包含全部必需列
func validateHeader(data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrCorruptFormat, err)
	}

	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[col] = true
	}
	for _, want := range Header {
		if !seen[want] {
			return fmt.Errorf("%w: 表头缺少列 %q", ErrCorruptFormat, want)
		}
	}
	return nil
}
