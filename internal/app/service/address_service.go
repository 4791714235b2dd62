package service

import (
	"errors"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressInput holds the fields of an address book entry
type AddressInput struct {
	Label        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	IsDefault    bool
}

// AddressService manages a user's saved delivery addresses
type AddressService interface {
	ListAddresses(userID uint) ([]model.Address, error)
	GetAddress(userID, addressID uint) (*model.Address, error)
	GetDefaultAddress(userID uint) (*model.Address, error)
	CreateAddress(userID uint, input AddressInput) (*model.Address, error)
	UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) ListAddresses(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

// GetAddress returns the address only when it belongs to the user.
// An address of another user reads as not found.
func (s *addressService) GetAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

func (s *addressService) GetDefaultAddress(userID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindDefaultByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (s *addressService) CreateAddress(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"label":   input.Label,
	})

	// First address becomes the default automatically
	existing, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	isDefault := input.IsDefault || len(existing) == 0

	if isDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	address := &model.Address{
		UserID:       userID,
		Label:        input.Label,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		IsDefault:    isDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error) {
	address, err := s.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	address.Label = input.Label
	address.AddressLine1 = input.AddressLine1
	address.AddressLine2 = input.AddressLine2
	address.City = input.City
	address.State = input.State
	address.PostalCode = input.PostalCode
	address.IsDefault = input.IsDefault || address.IsDefault

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}

	logger.Info("Address updated", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
	})
	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	address, err := s.GetAddress(userID, addressID)
	if err != nil {
		return err
	}

	if err := s.addressRepo.Delete(address); err != nil {
		return err
	}

	logger.Info("Address deleted", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})
	return nil
}
