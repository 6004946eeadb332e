package entity

// Page is one of the three dashboard modes. Pages are independent: nothing
// computed on one page carries over to another.
type Page string

const (
	PageUploadPredict Page = "upload-predict"
	PagePlanActivity  Page = "plan-activity"
	PageVisualize     Page = "visualize"
)

// Pages lists the modes in navigation order.
var Pages = []Page{PageUploadPredict, PagePlanActivity, PageVisualize}

func (p Page) Valid() bool {
	switch p {
	case PageUploadPredict, PagePlanActivity, PageVisualize:
		return true
	}
	return false
}

// Title is the heading shown for the page.
func (p Page) Title() string {
	switch p {
	case PageUploadPredict:
		return "Upload & Predict"
	case PagePlanActivity:
		return "Plan Next Year's Activity"
	case PageVisualize:
		return "Visualize Data"
	}
	return ""
}
