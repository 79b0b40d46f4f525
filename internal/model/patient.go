package model

import "time"

type Patient struct {
	Base
	Name         string `db:"name" json:"name"`
	BirthDate    string `db:"birth_date" json:"birth_date"`
	GuardianName string `db:"guardian_name" json:"guardian_name"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	Email        string `db:"email" json:"email,omitempty"`
	Age          int    `db:"-" json:"age"`
}

// ComputeAge derives the patient's age in whole years at now.
func (p *Patient) ComputeAge(now time.Time) {
	birth, err := time.Parse(DateLayout, p.BirthDate)
	if err != nil {
		p.Age = 0
		return
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	p.Age = age
}

type CreatePatientRequest struct {
	Name         string `json:"name" binding:"required"`
	BirthDate    string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	GuardianName string `json:"guardian_name" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
}

type UpdatePatientRequest struct {
	Name         *string `json:"name"`
	BirthDate    *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	GuardianName *string `json:"guardian_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
}
