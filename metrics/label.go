package metrics

const (
	// 常见的标签
	LabelService = "service"
	LabelLevel   = "level"
	LabelOutcome = "outcome"
)

const (
	// 常见的结果
	OutcomeEmitted    = "emitted"
	OutcomeSuppressed = "suppressed"
)

// Label 指标标签，为指标添加维度信息
//
// 标签命名规范：
//   - 使用小写字母和下划线：log_level 而不是 logLevel
//   - 标签值相对稳定：避免高基数标签，如请求ID、消息内容等
type Label struct {
	Key   string
	Value string
}

// L 便捷构造函数，创建一个 Label
//
//	counter.Inc(ctx, metrics.L("level", "info"))
func L(key, value string) Label {
	return Label{
		Key:   key,
		Value: value,
	}
}
