package models

import (
	"github.com/fms/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Name        string                 `gorm:"type:varchar(200);not null"`
	ContactName string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Email       string                 `gorm:"type:varchar(200)"`
	Address     string                 `gorm:"type:text"`
	TaxID       string                 `gorm:"type:varchar(50)"`
	Status      partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Name:        m.Name,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		TaxID:       m.TaxID,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&customer.TenantAggregateRoot)
	return customer
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.TaxID = c.TaxID
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	TenantAggregateModel
	Name        string               `gorm:"type:varchar(200);not null"`
	ContactName string               `gorm:"type:varchar(100)"`
	Phone       string               `gorm:"type:varchar(50)"`
	Email       string               `gorm:"type:varchar(200)"`
	Address     string               `gorm:"type:text"`
	TaxID       string               `gorm:"type:varchar(50)"`
	Status      partner.VendorStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	vendor := &partner.Vendor{
		Name:        m.Name,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		TaxID:       m.TaxID,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&vendor.TenantAggregateRoot)
	return vendor
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.ContactName = v.ContactName
	m.Phone = v.Phone
	m.Email = v.Email
	m.Address = v.Address
	m.TaxID = v.TaxID
	m.Status = v.Status
	m.Notes = v.Notes
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
