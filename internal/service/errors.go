package service

import (
	"errors"
	"fmt"
	"strings"
)

// 业务错误定义
var (
	ErrNotFound               = errors.New("记录不存在")
	ErrValidation             = errors.New("参数校验失败")
	ErrUnauthorized           = errors.New("无权执行该操作")
	ErrInvalidStateTransition = errors.New("当前状态不允许该操作")
	ErrQuantityExceeded       = errors.New("回库数量超过原始数量")
	ErrDependencyFailure      = errors.New("依赖服务调用失败")
	ErrInvalidCredentials     = errors.New("账号或密码错误")
	ErrAccountDisabled        = errors.New("账号已被禁用")
	ErrDuplicateRecord        = errors.New("记录已存在")
)

// StateTransitionError 状态前置条件失败，携带当前与要求状态。
type StateTransitionError struct {
	Current  string
	Required string
}

// Error 实现 error 接口
func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("当前状态 %s 不满足要求 %s", e.Current, e.Required)
}

// Is 支持 errors.Is(err, ErrInvalidStateTransition)
func (e *StateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// QuantityExceededError 回库数量超限，携带违规商品名列表。
type QuantityExceededError struct {
	Products []string
}

// Error 实现 error 接口
func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("回库数量超过原始数量: %s", strings.Join(e.Products, ", "))
}

// Is 支持 errors.Is(err, ErrQuantityExceeded)
func (e *QuantityExceededError) Is(target error) bool {
	return target == ErrQuantityExceeded
}

// ValidationError 字段校验失败，携带字段与原因。
type ValidationError struct {
	Field  string
	Reason string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 校验失败: %s", e.Field, e.Reason)
}

// Is 支持 errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DependencyError 依赖调用失败，携带依赖名与底层错误。
type DependencyError struct {
	Dependency string
	Err        error
}

// Error 实现 error 接口
func (e *DependencyError) Error() string {
	return fmt.Sprintf("依赖 %s 调用失败: %v", e.Dependency, e.Err)
}

// Is 支持 errors.Is(err, ErrDependencyFailure)
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyFailure
}

// Unwrap 返回底层错误
func (e *DependencyError) Unwrap() error {
	return e.Err
}
