package inout

// InsightPreviewReq carries the raw signals for a retention insight preview.
type InsightPreviewReq struct {
	RepeatRate    float64 `form:"repeat_rate" binding:"min=0,max=100"`
	DelayedOrders int     `form:"delayed_orders" binding:"min=0"`
	TotalOrders   int     `form:"total_orders" binding:"min=0"`
}
