package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Client 易支付风格网关客户端
type Client struct {
	GatewayURL  string
	MerchantID  string
	MerchantKey string
	NotifyURL   string
	ReturnURL   string
	httpClient  *http.Client
}

// NewClient 创建支付网关客户端
func NewClient(gatewayURL, merchantID, merchantKey, notifyURL, returnURL string) *Client {
	return &Client{
		GatewayURL:  gatewayURL,
		MerchantID:  merchantID,
		MerchantKey: merchantKey,
		NotifyURL:   notifyURL,
		ReturnURL:   returnURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// QueryResult 网关订单查询结果
type QueryResult struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	TradeNo string `json:"trade_no"`
	Status  int    `json:"status"` // 1: 已支付, 0: 未支付
}

// FormatAmount 将最小货币单位金额格式化为元
func FormatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

// BuildPayURL 构建收银台跳转链接
func (c *Client) BuildPayURL(orderNo, payType, subject string, amountMinor int64) string {
	params := url.Values{}
	params.Set("pid", c.MerchantID)
	params.Set("type", payType)
	params.Set("out_trade_no", orderNo)
	params.Set("notify_url", c.NotifyURL)
	params.Set("return_url", c.ReturnURL)
	params.Set("name", subject)
	params.Set("money", FormatAmount(amountMinor))
	params.Set("sign", c.Sign(params))
	params.Set("sign_type", "MD5")

	return fmt.Sprintf("%s/submit.php?%s", strings.TrimRight(c.GatewayURL, "/"), params.Encode())
}

// QueryOrder 主动查询网关订单状态
func (c *Client) QueryOrder(ctx context.Context, orderNo string) (*QueryResult, error) {
	apiURL := fmt.Sprintf("%s/api.php?act=order&pid=%s&key=%s&out_trade_no=%s",
		strings.TrimRight(c.GatewayURL, "/"), c.MerchantID, c.MerchantKey, url.QueryEscape(orderNo))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("解析网关响应失败: %w", err)
	}

	if result.Code != 1 {
		return nil, errors.New(result.Msg)
	}

	return &result, nil
}

// Sign 计算MD5参数签名
// 按参数名升序拼接 key=value，排除 sign/sign_type 和空值，末尾附加商户密钥
func (c *Client) Sign(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "sign" || k == "sign_type" || params.Get(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params.Get(k)))
	}

	raw := strings.Join(pairs, "&") + c.MerchantKey
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyNotify 校验异步回调签名
func (c *Client) VerifyNotify(params url.Values) bool {
	sign := params.Get("sign")
	if sign == "" {
		return false
	}
	return strings.EqualFold(sign, c.Sign(params))
}
