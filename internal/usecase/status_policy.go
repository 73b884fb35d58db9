package usecase

import (
	"ninjashop/internal/config"
	"ninjashop/internal/domain/model"
)

// ステータス遷移を許すかどうか
type StatusPolicy interface {
	Allow(from model.Status, to model.Status) bool
}

// どの遷移も許す
type OpenStatusPolicy struct{}

func (OpenStatusPolicy) Allow(from model.Status, to model.Status) bool {
	return true
}

// 名前ベースの遷移表。表に無い名前のステータスへは遷移できない。
type StrictStatusPolicy struct {
	next map[string][]string
}

func NewStrictStatusPolicy() StrictStatusPolicy {
	return StrictStatusPolicy{next: map[string][]string{
		model.StatusNew:     {model.StatusPaid, model.StatusCanceled},
		model.StatusPaid:    {model.StatusShipped, model.StatusCanceled},
		model.StatusShipped: {model.StatusDelivered},
	}}
}

func (p StrictStatusPolicy) Allow(from model.Status, to model.Status) bool {
	// 同じステータスへの変更は何もしないので許す
	if from.ID == to.ID {
		return true
	}
	for _, n := range p.next[from.Name] {
		if n == to.Name {
			return true
		}
	}
	return false
}

func NewStatusPolicy(mode string) StatusPolicy {
	if mode == config.TransitionsStrict {
		return NewStrictStatusPolicy()
	}
	return OpenStatusPolicy{}
}
