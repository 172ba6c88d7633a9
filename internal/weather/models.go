package weather

// apiResponse represents the OpenWeatherMap current-weather payload.
type apiResponse struct {
	Weather []condition `json:"weather"`
	Main    mainBlock   `json:"main"`
	Wind    windBlock   `json:"wind"`
	Clouds  cloudsBlock `json:"clouds"`
	Sys     sysBlock    `json:"sys"`
	Dt      int64       `json:"dt"`
	Name    string      `json:"name"`
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type cloudsBlock struct {
	All int `json:"all"`
}

type sysBlock struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}
