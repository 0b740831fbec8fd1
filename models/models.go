package models

// All returns every persisted model in dependency order for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&ClientPerson{},
		&ClientCompany{},
		&OutsourceCompany{},
		&CaseType{},
		&Case{},
		&CaseWork{},
	}
}
