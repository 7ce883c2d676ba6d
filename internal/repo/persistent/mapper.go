package persistent

import (
	"artmarket/internal/entity"
	"artmarket/internal/model"
)

func toUserModel(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		Role:      string(user.Role),
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserEntity(userModel *model.UserModel) *entity.User {
	return &entity.User{
		ID:        userModel.ID,
		Email:     userModel.Email,
		Username:  userModel.Username,
		Password:  userModel.Password,
		Role:      entity.UserRole(userModel.Role),
		Bio:       userModel.Bio,
		AvatarURL: userModel.AvatarURL,
		IsActive:  userModel.IsActive,
		CreatedAt: userModel.CreatedAt,
		UpdatedAt: userModel.UpdatedAt,
	}
}

func toOrderEntity(orderModel *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:            orderModel.ID,
		BuyerID:       orderModel.BuyerID,
		TotalPrice:    orderModel.TotalPrice,
		PaymentStatus: entity.PaymentStatus(orderModel.PaymentStatus),
		OrderStatus:   entity.OrderStatus(orderModel.OrderStatus),
		PaidAmount:    orderModel.PaidAmount,
		ProofRef:      orderModel.ProofRef,
		CreatedAt:     orderModel.CreatedAt,
		UpdatedAt:     orderModel.UpdatedAt,
	}
}
