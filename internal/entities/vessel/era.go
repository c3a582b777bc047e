package vessel

// Era is a named band of the in-universe timeline, inclusive on both ends
type Era struct {
	Name  string
	Start int
	End   int
}

// EraUnknown is returned for years outside every band
const EraUnknown = "Unknown"

// Eras covers the timeline in order without gaps
var Eras = []Era{
	{Name: "Age of War", Start: 2005, End: 2570},
	{Name: "Star League", Start: 2571, End: 2780},
	{Name: "Succession Wars", Start: 2781, End: 3049},
	{Name: "Clan Invasion", Start: 3050, End: 3061},
	{Name: "FedCom Civil War", Start: 3062, End: 3067},
	{Name: "Jihad", Start: 3068, End: 3081},
	{Name: "Republic", Start: 3082, End: 3130},
	{Name: "Dark Age", Start: 3131, End: 3150},
	{Name: "ilClan", Start: 3151, End: 9999},
}

// EraForYear labels a year with its era
func EraForYear(year int) string {
	for _, era := range Eras {
		if year >= era.Start && year <= era.End {
			return era.Name
		}
	}
	return EraUnknown
}
