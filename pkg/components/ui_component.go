package components

// BannerComponent 安装横幅的布局与可见性
//
// BannerRenderSystem 根据 Visible 决定是否绘制，并用各按钮矩形做点击检测。
type BannerComponent struct {
	Visible bool
	Title   string

	// 横幅矩形
	X, Y, Width, Height float64

	// 按钮矩形（相对屏幕）
	InstallX, InstallY, InstallW, InstallH float64
	CloseX, CloseY, CloseW, CloseH         float64

	// Toast 短暂提示（例如手动安装说明），ToastRemaining 秒后消失
	Toast          string
	ToastRemaining float64
}
