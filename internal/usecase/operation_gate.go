package usecase

import "sync"

// カートを変更する操作（追加・削除・会計・ログアウト）を1つずつにする。
// 実行中にもう1つ来たら待たずに BusyError（ボタン無効化と同じ扱い）。
type OperationGate struct {
	mu      sync.Mutex
	running string
}

func NewOperationGate() *OperationGate {
	return &OperationGate{}
}

// 取れたら解放用の関数を返す
func (g *OperationGate) Acquire(op string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running != "" {
		return nil, &BusyError{Operation: g.running}
	}
	g.running = op

	return func() {
		g.mu.Lock()
		g.running = ""
		g.mu.Unlock()
	}, nil
}

// 実行中の操作名（無ければ空）
func (g *OperationGate) Running() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}
