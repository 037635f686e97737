package entity

type Client struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type Part struct {
	PartID          int64   `json:"part_id"`
	ClientID        int64   `json:"client_id"`
	PartName        string  `json:"part_name"`
	PartDescription string  `json:"part_description"`
	PartValue       *string `json:"part_value"` // never written by this service
}

type Property struct {
	PropertyID    int64  `json:"property_id"`
	PartID        int64  `json:"part_id"`
	PropertyName  string `json:"property_name"`
	PropertyValue string `json:"property_value"`
}

// ClientPayload is the body of POST /clients and PUT /clients/:clientId/parts/:partId.
// One client, one part and one property are written from it.
type ClientPayload struct {
	ClientName      string `json:"client_name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	PartName        string `json:"part_name"`
	PartDescription string `json:"part_description"`
	PropertyName    string `json:"property_name"`
	PropertyValue   string `json:"property_value"`
}

/*
Mysql Table

CREATE TABLE client (
	client_id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	address VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL
);

CREATE TABLE part (
	part_id INT AUTO_INCREMENT PRIMARY KEY,
	client_id INT NOT NULL REFERENCES client(client_id),
	part_name VARCHAR(255) NOT NULL,
	part_description TEXT NOT NULL,
	part_value VARCHAR(255) NULL
);

CREATE TABLE part_properties (
	property_id INT AUTO_INCREMENT PRIMARY KEY,
	part_id INT NOT NULL REFERENCES part(part_id),
	property_name VARCHAR(255) NOT NULL,
	property_value VARCHAR(255) NOT NULL
);

*/
