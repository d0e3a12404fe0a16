package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/handylog/clog"
	"github.com/ceyewan/handylog/xerrors"
)

// decodeHook 让 clog.Level 等实现了 encoding.TextUnmarshaler 的字段可以直接从字符串解析，
// 并保留 viper 默认的 duration、逗号分隔切片转换
//
// []clog.Level 底层是字节切片，字符串会被逐字节拷贝，需要在其他 hook 之前单独处理。
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	stringToLevelsHookFunc(),
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
)

var levelsType = reflect.TypeOf([]clog.Level(nil))

// stringToLevelsHookFunc 把 "check,error" 这样的字符串解析为 []clog.Level
func stringToLevelsHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != levelsType {
			return data, nil
		}
		return clog.ParseLevels(reflect.ValueOf(data).String())
	}
}

// decode 使用与 viper 相同的宽松解码规则
func decode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook,
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// loader 实现 Loader 接口
type loader struct {
	v         *viper.Viper
	opts      *options
	logger    clog.Logger
	mu        sync.RWMutex
	watches   map[string][]chan Event
	oldValues map[string]any
}

// newLoader 创建一个新的配置加载器（内部使用）
func newLoader(opts *options) *loader {
	return &loader{
		v:         viper.New(),
		opts:      opts,
		logger:    opts.logger,
		watches:   make(map[string][]chan Event),
		oldValues: make(map[string]any),
	}
}

// Load 初始化并从所有来源加载配置
func (l *loader) Load(ctx context.Context) error {
	// 1. 配置 Viper
	l.v.SetConfigName(l.opts.name)
	l.v.SetConfigType(l.opts.fileType)

	for _, path := range l.opts.paths {
		l.v.AddConfigPath(path)
	}

	// 2. 环境变量设置（最高优先级）
	l.v.SetEnvPrefix(l.opts.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// 3. 尝试加载 .env 文件，已存在的环境变量不会被覆盖
	if err := l.loadDotEnv(); err != nil {
		l.logger.Debug("no .env file loaded:", err)
	}

	// 4. 加载基础配置（最低优先级）
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !xerrors.As(err, &notFound) {
			return WrapLoadError(err, l.opts.name)
		}
		l.logger.Warning("no configuration file found for", l.opts.name, "in", l.opts.paths)
	}

	// 5. 加载环境特定配置（中等优先级）
	if err := l.loadEnvironmentConfig(); err != nil {
		return err
	}

	// 6. 验证配置
	if err := l.Validate(); err != nil {
		return err
	}

	// 7. 保存当前值作为基线
	l.captureCurrentValues()

	// 8. 配置文件存在时启动文件监听
	if l.v.ConfigFileUsed() == "" {
		return nil
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if err := l.loadEnvironmentConfig(); err != nil {
			l.logger.Error("reload environment config failed:", err)
		}
		if err := l.loadDotEnv(); err != nil {
			l.logger.Debug("no .env file reloaded:", err)
		}
		l.notifyWatches(e)
	})
	l.v.WatchConfig()
	l.logger.Check("configuration loaded from", l.v.ConfigFileUsed())

	return nil
}

// loadDotEnv 尝试从工作目录和配置路径加载 .env 文件
func (l *loader) loadDotEnv() error {
	var envLoaded bool
	var lastErr error

	if err := godotenv.Load(); err == nil {
		envLoaded = true
	} else {
		lastErr = err
	}

	for _, path := range l.opts.paths {
		envPath := filepath.Join(path, ".env")
		if err := godotenv.Load(envPath); err == nil {
			envLoaded = true
		} else {
			lastErr = err
		}
	}

	if !envLoaded && lastErr != nil {
		return lastErr
	}
	return nil
}

// loadEnvironmentConfig 加载 <name>.<env> 环境特定配置文件，env 取自 <PREFIX>_ENV
func (l *loader) loadEnvironmentConfig() error {
	env := os.Getenv(fmt.Sprintf("%s_ENV", l.opts.envPrefix))
	if env == "" {
		return nil
	}

	originalName := l.opts.name
	envConfigName := fmt.Sprintf("%s.%s", l.opts.name, env)
	l.v.SetConfigName(envConfigName)
	defer l.v.SetConfigName(originalName)

	if err := l.v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !xerrors.As(err, &notFound) {
			return WrapLoadError(err, envConfigName)
		}
		l.logger.Info("no environment configuration file found for", env)
		return nil
	}
	l.logger.Info("loaded environment configuration", env)
	return nil
}

// captureCurrentValues 保存当前配置值用于变更检测
func (l *loader) captureCurrentValues() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.watches {
		l.oldValues[key] = l.v.Get(key)
	}
}

// Get 根据 key 获取配置值
func (l *loader) Get(key string) any {
	return l.v.Get(key)
}

// Unmarshal 将整个配置反序列化到结构体
func (l *loader) Unmarshal(v any) error {
	if err := l.v.Unmarshal(v, viper.DecodeHook(decodeHook)); err != nil {
		return fmt.Errorf("unmarshal config: %w: %w", xerrors.ErrInvalidInput, err)
	}
	return nil
}

// UnmarshalKey 将特定配置 key 反序列化到结构体
//
// viper 的 UnmarshalKey 直接读取文件中的子树，不会应用环境变量覆盖，
// 这里改为从 AllSettings 中取出子树，文件中已有的字段可以被环境变量覆盖。
func (l *loader) UnmarshalKey(key string, v any) error {
	if err := decode(l.lookup(key), v); err != nil {
		return fmt.Errorf("unmarshal config key %q: %w: %w", key, xerrors.ErrInvalidInput, err)
	}
	return nil
}

// lookup 在合并了环境变量的配置中按 "a.b.c" 查找子树
func (l *loader) lookup(key string) any {
	var cur any = l.v.AllSettings()
	for part := range strings.SplitSeq(strings.ToLower(key), ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// Watch 订阅特定配置 key 的变更，ctx 取消后通道被关闭
func (l *loader) Watch(ctx context.Context, key string) (<-chan Event, error) {
	if key == "" {
		return nil, xerrors.Invalidf("watch key is empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Event, 10)
	l.watches[key] = append(l.watches[key], ch)
	l.oldValues[key] = l.v.Get(key)

	go func() {
		<-ctx.Done()
		l.removeWatch(key, ch)
	}()

	return ch, nil
}

// removeWatch 从注册表中移除监听通道并关闭它
//
// 通道只在这里关闭，且与 notifyWatches 持有同一把锁，不会向已关闭的通道发送。
func (l *loader) removeWatch(key string, ch chan Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chans := l.watches[key]
	for i, c := range chans {
		if c == ch {
			l.watches[key] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
	if len(l.watches[key]) == 0 {
		delete(l.watches, key)
		delete(l.oldValues, key)
	}
	close(ch)
}

// Validate 验证配置
func (l *loader) Validate() error {
	if len(l.v.AllSettings()) == 0 {
		return xerrors.Wrapf(ErrValidationFailed, "configuration is empty")
	}
	return nil
}

// notifyWatches 通知所有值发生变化的监听者
func (l *loader) notifyWatches(_ fsnotify.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, channels := range l.watches {
		newValue := l.v.Get(key)
		oldValue := l.oldValues[key]
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}

		event := Event{
			Key:       key,
			Value:     newValue,
			OldValue:  oldValue,
			Source:    "file",
			Timestamp: time.Now(),
		}
		l.oldValues[key] = newValue

		for _, ch := range channels {
			select {
			case ch <- event:
			default:
				l.logger.Warning("watch channel is full, dropping event for", key)
			}
		}
	}
}
