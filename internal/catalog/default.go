package catalog

// Default returns the built-in catalog covering the 22 administrative regions
// the CWA F-C0032-001 datastore reports. The canonical identifier is the
// locationName the datastore expects; aliases cover the 台/臺 variants and
// romanized names.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		// defaultEntries is a compile-time constant set; this cannot fail.
		panic(err)
	}
	return c
}

var defaultEntries = []LocationEntry{
	{CanonicalID: "臺北市", DisplayName: "臺北市", Aliases: []string{"台北市", "台北", "Taipei", "Taipei City"}},
	{CanonicalID: "新北市", DisplayName: "新北市", Aliases: []string{"新北", "New Taipei", "New Taipei City"}},
	{CanonicalID: "桃園市", DisplayName: "桃園市", Aliases: []string{"桃園", "Taoyuan"}},
	{CanonicalID: "臺中市", DisplayName: "臺中市", Aliases: []string{"台中市", "台中", "Taichung"}},
	{CanonicalID: "臺南市", DisplayName: "臺南市", Aliases: []string{"台南市", "台南", "Tainan"}},
	{CanonicalID: "高雄市", DisplayName: "高雄市", Aliases: []string{"高雄", "Kaohsiung"}},
	{CanonicalID: "基隆市", DisplayName: "基隆市", Aliases: []string{"基隆", "Keelung"}},
	{CanonicalID: "新竹市", DisplayName: "新竹市", Aliases: []string{"Hsinchu", "Hsinchu City"}},
	{CanonicalID: "嘉義市", DisplayName: "嘉義市", Aliases: []string{"Chiayi", "Chiayi City"}},
	{CanonicalID: "新竹縣", DisplayName: "新竹縣", Aliases: []string{"Hsinchu County"}},
	{CanonicalID: "苗栗縣", DisplayName: "苗栗縣", Aliases: []string{"苗栗", "Miaoli"}},
	{CanonicalID: "彰化縣", DisplayName: "彰化縣", Aliases: []string{"彰化", "Changhua"}},
	{CanonicalID: "南投縣", DisplayName: "南投縣", Aliases: []string{"南投", "Nantou"}},
	{CanonicalID: "雲林縣", DisplayName: "雲林縣", Aliases: []string{"雲林", "Yunlin"}},
	{CanonicalID: "嘉義縣", DisplayName: "嘉義縣", Aliases: []string{"Chiayi County"}},
	{CanonicalID: "屏東縣", DisplayName: "屏東縣", Aliases: []string{"屏東", "Pingtung"}},
	{CanonicalID: "宜蘭縣", DisplayName: "宜蘭縣", Aliases: []string{"宜蘭", "Yilan"}},
	{CanonicalID: "花蓮縣", DisplayName: "花蓮縣", Aliases: []string{"花蓮", "Hualien"}},
	{CanonicalID: "臺東縣", DisplayName: "臺東縣", Aliases: []string{"台東縣", "台東", "Taitung"}},
	{CanonicalID: "澎湖縣", DisplayName: "澎湖縣", Aliases: []string{"澎湖", "Penghu"}},
	{CanonicalID: "金門縣", DisplayName: "金門縣", Aliases: []string{"金門", "Kinmen"}},
	{CanonicalID: "連江縣", DisplayName: "連江縣", Aliases: []string{"連江", "馬祖", "Lienchiang", "Matsu"}},
}
