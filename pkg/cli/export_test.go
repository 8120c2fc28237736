package cli

var (
	RunWithIO      = run
	PrintDashboard = printDashboard
)
