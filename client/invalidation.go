package client

import "net/url"

// 缓存 key。集合视图在 reports/、transactions/ 下，单个实体在 report/、transaction/ 下，
// 实体ID经过转义，任何ID都不会落到集合 key 上
const (
	keyReportsMine      = "reports/mine"
	keyReportsAdmin     = "reports/admin/"
	keyTransactionsMine = "transactions/mine"
	keyCategories       = "categories"

	keyReportPrefix      = "report/"
	keyTransactionPrefix = "transaction/"
)

func reportKey(id string) string {
	return keyReportPrefix + url.PathEscape(id)
}

func transactionKey(id string) string {
	return keyTransactionPrefix + url.PathEscape(id)
}

type mutation int

const (
	mutationSubmitReport mutation = iota
	mutationResolveReport
)

// invalidationTable 每个写操作成功后需要失效的 key，参数为服务端返回的报告。
// 提交和处理都同时影响报告集合与该报告所属交易的视图。
var invalidationTable = map[mutation]func(r *Report) []string{
	mutationSubmitReport: func(r *Report) []string {
		return []string{
			keyReportsMine,
			keyReportsAdmin + "*",
			keyTransactionsMine,
			transactionKey(r.TransactionID),
		}
	},
	mutationResolveReport: func(r *Report) []string {
		return []string{
			keyReportsAdmin + "*",
			reportKey(r.ID),
			keyReportsMine,
			keyTransactionsMine,
			transactionKey(r.TransactionID),
		}
	},
}

// invalidate 只在写操作成功后调用
func (c *Client) invalidate(m mutation, r *Report) {
	c.cache.Invalidate(invalidationTable[m](r)...)
}
