package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はベンダーAPI呼び出し用に設定されたHTTPクライアントを作成します。
//
// ベンダーごとの時間制限はオーケストレーターがcontextの期限として課すため、
// ここで渡すtimeoutはあくまで最後の防波堤です。
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - Transportは接続の安定性とリソース管理のために明示的に設定
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
