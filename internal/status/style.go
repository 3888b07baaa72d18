package status

// Style is how a status is shown to the user.
type Style struct {
	Label string
	Color string
	Icon  string
}

type styleKey struct {
	kind   Kind
	status string
}

var neutralStyle = Style{Label: "Unknown", Color: "gray", Icon: "?"}

var styles = map[styleKey]Style{
	{KindApplication, string(ApplicationPending)}:     {Label: "Pending", Color: "yellow", Icon: "⏳"},
	{KindApplication, string(ApplicationReviewed)}:    {Label: "Reviewed", Color: "blue", Icon: "👁"},
	{KindApplication, string(ApplicationShortlisted)}: {Label: "Shortlisted", Color: "green", Icon: "★"},
	{KindApplication, string(ApplicationRejected)}:    {Label: "Rejected", Color: "red", Icon: "✗"},
	{KindApplication, string(ApplicationHired)}:       {Label: "Hired", Color: "purple", Icon: "✓"},

	{KindJob, string(JobPending)}:  {Label: "Pending Review", Color: "yellow", Icon: "⏳"},
	{KindJob, string(JobApproved)}: {Label: "Approved", Color: "green", Icon: "✓"},
	{KindJob, string(JobActive)}:   {Label: "Active", Color: "green", Icon: "●"},
	{KindJob, string(JobRejected)}: {Label: "Rejected", Color: "red", Icon: "✗"},
	{KindJob, string(JobFlagged)}:  {Label: "Flagged", Color: "orange", Icon: "⚑"},
	{KindJob, string(JobClosed)}:   {Label: "Closed", Color: "gray", Icon: "■"},
	{KindJob, string(JobDraft)}:    {Label: "Draft", Color: "gray", Icon: "✎"},
}

// StyleFor returns the display style of a status for the given entity kind.
// Unknown statuses get a neutral style labelled with the raw value.
func StyleFor(kind Kind, status string) Style {
	if s, ok := styles[styleKey{kind, status}]; ok {
		return s
	}
	s := neutralStyle
	if status != "" {
		s.Label = status
	}
	return s
}
