package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/codec"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/model"
)

// ── 存储层错误 ──

var (
	ErrDuplicateUsername = errors.New("用户名已存在")
	ErrNotFound          = errors.New("未找到用户")
)

// UserStore 用户记录存储接口
// 所有对记录的构造、变更、销毁都必须经由本接口，调用方不得绕过
type UserStore interface {
	// InsertIfAbsent 插入新记录；用户名已存在时返回 ErrDuplicateUsername
	InsertIfAbsent(u *model.User) (*model.User, error)
	// Find 按用户名查找，未找到时第二个返回值为 false
	Find(username string) (*model.User, bool)
	// FindByCredentials 按用户名与密码精确匹配查找
	FindByCredentials(username, password string) (*model.User, bool)
	// Update 定位记录并应用 mutate 修改；未找到时返回 ErrNotFound
	Update(username string, mutate func(*model.User)) (*model.User, error)
	// Delete 删除记录；未找到时返回 ErrNotFound
	Delete(username string) error
	// ListAll 返回全部记录（插入顺序）
	ListAll() []*model.User
}

// FileStore 基于单个 CSV 文件的 UserStore 实现
//
// 并发模型：每次变更都是「读全集 → 内存修改 → 写全集」的循环，
// 由同一把 RWMutex 串行化；读操作持共享锁，观察到的状态要么完全在
// 某次变更之前、要么完全在其之后。持久化先写临时文件再原子重命名，
// 写失败时内存与文件均保持原状。
type FileStore struct {
	path   string
	logger *zap.Logger

	mu    sync.RWMutex
	users []*model.User          // 插入顺序
	index map[string]*model.User // username → 记录
}

var _ UserStore = (*FileStore)(nil)

// Open 打开（或创建）CSV 存储
// 文件不存在等价于空集；seedDemo 为 true 且当前为空集时写入演示用户
// 文件存在但无法解析时返回错误，调用方应视为致命
func Open(path string, seedDemo bool, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		logger: logger,
		index:  make(map[string]*model.User),
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("读取用户数据文件失败: %w", err)
	}

	if err == nil {
		users, decErr := codec.DecodeAll(data)
		if decErr != nil {
			return nil, decErr
		}
		s.users = users
		for _, u := range s.users {
			if _, dup := s.index[u.Username]; dup {
				return nil, fmt.Errorf("%w: 用户名 %q 重复", codec.ErrCorruptFormat, u.Username)
			}
			s.index[u.Username] = u
		}
	}

	if len(s.users) == 0 && seedDemo {
		seeded := demoUsers(time.Now().UTC().Format(model.TimeLayout))
		if err := s.persist(seeded); err != nil {
			return nil, err
		}
		s.users = seeded
		for _, u := range seeded {
			s.index[u.Username] = u
		}
		logger.Info("用户数据为空，已写入演示用户", zap.Int("count", len(seeded)))
	} else if len(s.users) == 0 {
		// 确保文件存在且带表头，后续读写路径一致
		if err := s.persist(nil); err != nil {
			return nil, err
		}
	}

	logger.Info("用户存储已加载",
		zap.String("path", path),
		zap.Int("users", len(s.users)),
	)

	return s, nil
}

func (s *FileStore) InsertIfAbsent(u *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[u.Username]; exists {
		return nil, ErrDuplicateUsername
	}

	rec := u.Clone()
	next := make([]*model.User, len(s.users), len(s.users)+1)
	copy(next, s.users)
	next = append(next, rec)

	if err := s.persist(next); err != nil {
		return nil, err
	}

	s.users = next
	s.index[rec.Username] = rec
	return rec.Clone(), nil
}

func (s *FileStore) Find(username string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.index[username]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

func (s *FileStore) FindByCredentials(username, password string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.index[username]
	if !ok || u.Password != password {
		return nil, false
	}
	return u.Clone(), true
}

func (s *FileStore) Update(username string, mutate func(*model.User)) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := -1
	for i, u := range s.users {
		if u.Username == username {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, ErrNotFound
	}

	rec := s.users[pos].Clone()
	mutate(rec)
	// username 是不可变键，不随 mutate 改变
	rec.Username = username

	next := make([]*model.User, len(s.users))
	copy(next, s.users)
	next[pos] = rec

	if err := s.persist(next); err != nil {
		return nil, err
	}

	s.users = next
	s.index[username] = rec
	return rec.Clone(), nil
}

func (s *FileStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[username]; !exists {
		return ErrNotFound
	}

	next := make([]*model.User, 0, len(s.users)-1)
	for _, u := range s.users {
		if u.Username != username {
			next = append(next, u)
		}
	}

	if err := s.persist(next); err != nil {
		return err
	}

	s.users = next
	delete(s.index, username)
	return nil
}

func (s *FileStore) ListAll() []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*model.User, len(s.users))
	for i, u := range s.users {
		list[i] = u.Clone()
	}
	return list
}

// persist 将候选记录集写入磁盘：先写临时文件，再原子重命名覆盖
// 调用方必须持有写锁；失败时不修改内存状态
func (s *FileStore) persist(users []*model.User) error {
	data, err := codec.EncodeAll(users)
	if err != nil {
		return fmt.Errorf("编码用户数据失败: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.csv")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入用户数据失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("写入用户数据失败: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("设置文件权限失败: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换用户数据文件失败: %w", err)
	}
	return nil
}

// demoUsers 非生产环境的初始演示数据（与历史脚本一致的十个账号）
func demoUsers(now string) []*model.User {
	seed := []struct {
		name, grade, role string
	}{
		{"alice", "大三", "前端"},
		{"bob", "大三", "后端"},
		{"carol", "大四", "算法"},
		{"dave", "大三", "全栈"},
		{"eve", "大二", "测试"},
		{"frank", "大三", "前端"},
		{"grace", "大四", "后端"},
		{"heidi", "大三", "算法"},
		{"ivan", "大二", "全栈"},
		{"judy", "大三", "测试"},
	}

	users := make([]*model.User, 0, len(seed))
	for _, item := range seed {
		users = append(users, &model.User{
			Username:     item.name,
			Password:     item.name + "123",
			Grade:        item.grade,
			TargetRole:   item.role,
			Status:       model.StatusNormal,
			RegisterTime: now,
		})
	}
	return users
}
