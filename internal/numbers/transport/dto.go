package transport

// Requests

type InspectRequest struct {
	Text   string `form:"text" validate:"required,max=250"`
	Region string `form:"region" validate:"omitempty,len=2,alpha"`
}

type BatchItem struct {
	Text   string `json:"text" validate:"required,max=250"`
	Region string `json:"region" validate:"omitempty,len=2,alpha"`
}

type BatchRequest struct {
	// Region applies to items without a region of their own.
	Region string      `json:"region" validate:"omitempty,len=2,alpha"`
	Items  []BatchItem `json:"items" validate:"required,min=1,dive"`
}

type FormatRequest struct {
	Text           string `form:"text" validate:"required,max=250"`
	Region         string `form:"region" validate:"omitempty,len=2,alpha"`
	Format         string `form:"format" validate:"omitempty,format"`
	CallingFrom    string `form:"callingFrom" validate:"omitempty,len=2,alpha"`
	Mobile         bool   `form:"mobile"`
	WithFormatting bool   `form:"withFormatting"`
}

type DescribeRequest struct {
	Text        string `form:"text" validate:"required,max=250"`
	Region      string `form:"region" validate:"omitempty,len=2,alpha"`
	Locale      string `form:"locale" validate:"omitempty,max=35"`
	UserRegion  string `form:"userRegion" validate:"omitempty,len=2,alpha"`
	CarrierMode string `form:"carrierMode" validate:"omitempty,carriermode"`
}

type ExampleRequest struct {
	Region string `uri:"region" validate:"required,alpha,len=2"`
	Type   string `form:"type" validate:"omitempty,numbertype"`
}

type NetworkExampleRequest struct {
	CallingCode int `uri:"callingCode" validate:"required,min=1,max=999"`
}

// Responses

type Formats struct {
	E164          string `json:"e164"`
	International string `json:"international"`
	National      string `json:"national"`
	RFC3966       string `json:"rfc3966"`
}

type InspectResponse struct {
	Input              string  `json:"input"`
	E164               string  `json:"e164"`
	CountryCallingCode int     `json:"countryCallingCode"`
	NationalNumber     string  `json:"nationalNumber"`
	Extension          string  `json:"extension,omitempty"`
	Region             *string `json:"region"`
	Type               string  `json:"type"`
	Possible           bool    `json:"possible"`
	Possibility        string  `json:"possibility"`
	Valid              bool    `json:"valid"`
	AreaCode           string  `json:"areaCode,omitempty"`
	Formats            Formats `json:"formats"`
}

type ItemError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type BatchResult struct {
	Index  int              `json:"index"`
	Input  string           `json:"input"`
	Result *InspectResponse `json:"result,omitempty"`
	Error  *ItemError       `json:"error,omitempty"`
}

type BatchResponse struct {
	Items  []BatchResult `json:"items"`
	Failed int           `json:"failed"`
}

type FormatResponse struct {
	E164      string `json:"e164"`
	Format    string `json:"format"`
	Formatted string `json:"formatted"`
	// Available is false when the number cannot be dialled from the given
	// region; Formatted is then empty.
	Available bool `json:"available"`
}

type DescribeResponse struct {
	E164        string   `json:"e164"`
	Description *string  `json:"description"`
	Carrier     *string  `json:"carrier"`
	TimeZones   []string `json:"timeZones"`
}

type RegionResponse struct {
	Region      string `json:"region"`
	CallingCode int    `json:"callingCode"`
	Name        string `json:"name"`
}

type RegionListResponse struct {
	MetadataVersion string           `json:"metadataVersion"`
	Regions         []RegionResponse `json:"regions"`
	GlobalNetworks  []int            `json:"globalNetworks"`
}

type ExampleResponse struct {
	Region        *string `json:"region"`
	Type          string  `json:"type"`
	E164          string  `json:"e164"`
	International string  `json:"international"`
	National      string  `json:"national"`
}
