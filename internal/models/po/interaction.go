package po

import (
	"fmt"
	"strings"
)

// InteractionType 是封闭的互动类型集合。
type InteractionType int

const (
	// InteractionWatch 观看。
	InteractionWatch InteractionType = iota + 1
	// InteractionLike 点赞。
	InteractionLike
	// InteractionUnlike 取消点赞，LIKE 的逆操作。
	InteractionUnlike
	// InteractionCreate 创作。
	InteractionCreate
	// InteractionShare 分享。
	InteractionShare
)

func (t InteractionType) String() string {
	switch t {
	case InteractionWatch:
		return "WATCH"
	case InteractionLike:
		return "LIKE"
	case InteractionUnlike:
		return "UNLIKE"
	case InteractionCreate:
		return "CREATE"
	case InteractionShare:
		return "SHARE"
	default:
		return "UNKNOWN"
	}
}

// Valid 判断是否为已知类型。
func (t InteractionType) Valid() bool {
	return t >= InteractionWatch && t <= InteractionShare
}

// ParseInteractionType 解析外部传入的互动类型，大小写不敏感。
func ParseInteractionType(raw string) (InteractionType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WATCH":
		return InteractionWatch, nil
	case "LIKE":
		return InteractionLike, nil
	case "UNLIKE":
		return InteractionUnlike, nil
	case "CREATE":
		return InteractionCreate, nil
	case "SHARE":
		return InteractionShare, nil
	default:
		return 0, fmt.Errorf("unknown interaction type %q", raw)
	}
}

// InteractionVisitor 为每种互动类型提供一个处理方法。
// 新增互动类型时必须扩展该接口，所有实现随之编译失败，从而强制穷举。
type InteractionVisitor interface {
	OnWatch() error
	OnLike() error
	OnUnlike() error
	OnCreate() error
	OnShare() error
}

// Accept 将互动类型分派给 visitor 对应的方法。
func (t InteractionType) Accept(v InteractionVisitor) error {
	switch t {
	case InteractionWatch:
		return v.OnWatch()
	case InteractionLike:
		return v.OnLike()
	case InteractionUnlike:
		return v.OnUnlike()
	case InteractionCreate:
		return v.OnCreate()
	case InteractionShare:
		return v.OnShare()
	default:
		return fmt.Errorf("unsupported interaction type %d", int(t))
	}
}
