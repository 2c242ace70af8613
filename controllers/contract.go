// controllers/contract.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"homecare-backend/models"
	"homecare-backend/services"
	"homecare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContractController exposes the contract lifecycle over HTTP.
type ContractController struct {
	Service *services.ContractService
}

// IssueContractInput defines the body for issuing a contract
type IssueContractInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	AgentName string    `json:"agentName"`
}

// SignContractInput carries a captured signature as an image data URI
type SignContractInput struct {
	Signature string `json:"signature" binding:"required"`
}

// IssueContract generates the agreement PDF for a booking, creates the
// pending contract row and queues the signature-request email
func (cc *ContractController) IssueContract(c *gin.Context) {
	var input IssueContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	contract, err := cc.Service.Issue(input.BookingID, input.AgentName)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to issue contract")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"contract":   contract,
		"signingUrl": cc.Service.SigningURL(contract.ID),
	})
}

// ListContracts returns all contracts with their dashboard bucket,
// contracts awaiting the admin's counter-signature first
func (cc *ContractController) ListContracts(c *gin.Context) {
	summaries, err := cc.Service.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contracts")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetContract serves the client signature page's data
func (cc *ContractController) GetContract(c *gin.Context) {
	contractUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	contract, err := cc.Service.Get(contractUUID)
	if err != nil {
		if errors.Is(err, services.ErrContractNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contract)
}

// ClientSign stores the client's signature
func (cc *ContractController) ClientSign(c *gin.Context) {
	cc.applySignature(c, cc.Service.ClientSign)
}

// AdminSign stores the counter-signature and triggers finalization. A
// finalization failure does not roll the signature back: the response
// flags emailQueued=false and the admin can re-run finalize later.
func (cc *ContractController) AdminSign(c *gin.Context) {
	contractUUID, input, ok := cc.bindSignature(c)
	if !ok {
		return
	}

	contract, err := cc.Service.AdminSign(contractUUID, input.Signature)
	if err != nil {
		cc.respondSignError(c, err)
		return
	}

	if err := cc.Service.Finalize(contract.ID); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"contract":    contract,
			"emailQueued": false,
			"warning":     "Contract signed, but the confirmation email could not be queued",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contract":    contract,
		"emailQueued": true,
	})
}

// FinalizeContract re-renders the fully signed agreement and queues the
// fully-executed email
func (cc *ContractController) FinalizeContract(c *gin.Context) {
	contractUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	if err := cc.Service.Finalize(contractUUID); err != nil {
		switch {
		case errors.Is(err, services.ErrContractNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		case errors.Is(err, services.ErrSignaturesMissing):
			utils.RespondWithError(c, http.StatusPreconditionFailed, "Contract is not signed by both parties")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to finalize contract")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Finalized agreement queued for delivery"})
}

func (cc *ContractController) applySignature(c *gin.Context, sign func(uuid.UUID, string) (*models.Contract, error)) {
	contractUUID, input, ok := cc.bindSignature(c)
	if !ok {
		return
	}

	contract, err := sign(contractUUID, input.Signature)
	if err != nil {
		cc.respondSignError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (cc *ContractController) bindSignature(c *gin.Context) (uuid.UUID, SignContractInput, bool) {
	var input SignContractInput

	contractUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contract ID format")
		return uuid.Nil, input, false
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return uuid.Nil, input, false
	}

	if !strings.HasPrefix(input.Signature, "data:image/") {
		utils.RespondWithError(c, http.StatusBadRequest, "Signature must be an image data URI")
		return uuid.Nil, input, false
	}

	return contractUUID, input, true
}

func (cc *ContractController) respondSignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContractNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
	case errors.Is(err, models.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, "Contract is not awaiting this signature")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sign contract")
	}
}
