// Package analytics 实现 SINTA 指标的排名、分类汇总、高杠杆指标、模拟与机构对比。
//
// 所有函数均为纯函数：不修改入参，不持有状态。除零等情况以 nil 指针表示“未定义”，
// 不返回 0 或 ±Inf。
package analytics
